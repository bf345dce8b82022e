package api

import (
	"net/http"
	"strings"
	"time"

	"b3acon/internal/shop"
	"b3acon/pkg/config"
	"b3acon/pkg/shopify"
)

// ShopifySessionAuth validates Shopify embedded session tokens.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// In dev, if Authorization is missing, it can fall back to X-Shop-Domain to keep local testing simple.
func ShopifySessionAuth(cfg config.Config, shopsRepo *shop.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				vs, err := shopify.VerifySessionToken(token, cfg.Shopify.APIKey, cfg.Shopify.APISecret, time.Now())
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
					return
				}

				s, err := shopsRepo.FindByDomain(r.Context(), vs.ShopDomain)
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown shop")
					return
				}

				next.ServeHTTP(w, r.WithContext(WithShop(r.Context(), s)))
				return
			}

			// Dev fallback
			if cfg.AppEnv != "prod" {
				MerchantAuth(shopsRepo)(next).ServeHTTP(w, r)
				return
			}

			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		})
	}
}
