package api

import (
	"net/http"
	"strings"

	"b3acon/internal/shop"
)

// MerchantAuth is a minimal shop-scoped auth middleware for early development.
//
// Contract:
// - Caller must provide the shop domain via `X-Shop-Domain` header or `?shop=` query param.
// - Middleware loads the shop record from DB and attaches it to context.
//
// Note: For production embedded apps, this must be replaced by a signed session/JWT verification.
func MerchantAuth(shopsRepo *shop.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopDomain := strings.TrimSpace(r.Header.Get("X-Shop-Domain"))
			if shopDomain == "" {
				shopDomain = strings.TrimSpace(r.URL.Query().Get("shop"))
			}
			if shopDomain == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing shop identity")
				return
			}

			s, err := shopsRepo.FindByDomain(r.Context(), shopDomain)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown shop")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithShop(r.Context(), s)))
		})
	}
}
