package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"b3acon/internal/api"
	"b3acon/internal/shop"
	"b3acon/pkg/config"
)

// ProxyAuth guards endpoints reached through the Shopify app proxy. The proxy
// appends shop, timestamp and a hex signature over the sorted query string;
// after verification the shop record is loaded into the request context.
func ProxyAuth(cfg config.Config, shopsRepo *shop.Repository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			qs := r.URL.Query()

			if !VerifyProxySignature(qs, cfg.Shopify.APISecret, cfg.StrictWebhookVerification, logger) {
				api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid proxy signature")
				return
			}

			shopDomain := strings.TrimSpace(qs.Get("shop"))
			if shopDomain == "" {
				api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing shop parameter")
				return
			}

			s, err := shopsRepo.FindByDomain(r.Context(), shopDomain)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown shop")
				return
			}

			next.ServeHTTP(w, r.WithContext(api.WithShop(r.Context(), s)))
		})
	}
}
