package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"b3acon/internal/shop"
	"b3acon/internal/webhookconfig"
	"b3acon/pkg/config"
	"b3acon/pkg/shopify"
)

type Handlers struct {
	Cfg            config.Config
	Shops          *shop.Repository
	WebhookConfigs *webhookconfig.Repository
	Exchanger      shopify.OAuthExchanger
	Logger         zerolog.Logger
}

func (h Handlers) Install(w http.ResponseWriter, r *http.Request) {
	shopDomain := strings.TrimSpace(r.URL.Query().Get("shop"))
	if shopDomain == "" {
		http.Error(w, "missing shop", http.StatusBadRequest)
		return
	}

	state := randomHex(16)
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false, // local dev; set true behind TLS in prod
	})

	u := url.URL{
		Scheme: "https",
		Host:   shop.APIDomain(shop.NormalizeDomain(shopDomain)),
		Path:   "/admin/oauth/authorize",
	}
	q := u.Query()
	q.Set("client_id", h.Cfg.Shopify.APIKey)
	q.Set("scope", h.Cfg.Shopify.Scopes)
	q.Set("redirect_uri", h.Cfg.Shopify.RedirectURL)
	q.Set("state", state)
	u.RawQuery = q.Encode()

	http.Redirect(w, r, u.String(), http.StatusFound)
}

func (h Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	shopDomain := strings.TrimSpace(qs.Get("shop"))
	code := strings.TrimSpace(qs.Get("code"))

	if shopDomain == "" || code == "" {
		http.Error(w, "missing shop or code", http.StatusBadRequest)
		return
	}

	c, err := r.Cookie("oauth_state")
	if err != nil || c.Value == "" || c.Value != qs.Get("state") {
		http.Error(w, "invalid oauth state", http.StatusBadRequest)
		return
	}

	if !VerifyOAuthHMAC(qs, h.Cfg.Shopify.APISecret) {
		http.Error(w, "invalid hmac", http.StatusUnauthorized)
		return
	}

	ex := h.Exchanger
	ex.APIKey = h.Cfg.Shopify.APIKey
	ex.APISecret = h.Cfg.Shopify.APISecret

	token, err := ex.ExchangeCodeForToken(r.Context(), shopDomain, code)
	if err != nil {
		http.Error(w, fmt.Sprintf("token exchange: %v", err), http.StatusBadGateway)
		return
	}

	s, err := h.Shops.Upsert(r.Context(), shopDomain, token)
	if err != nil {
		http.Error(w, fmt.Sprintf("save shop: %v", err), http.StatusInternalServerError)
		return
	}

	// Register lifecycle webhooks if we have a public base URL. The GDPR
	// compliance topics are configured in the Partner dashboard and arrive on
	// the same endpoint.
	if strings.TrimSpace(h.Cfg.PublicBaseURL) != "" {
		base := strings.TrimRight(strings.TrimSpace(h.Cfg.PublicBaseURL), "/")
		client := shopify.Client{
			ShopDomain:  shop.APIDomain(s.Domain),
			AccessToken: token,
			APIVersion:  h.Cfg.Shopify.APIVersion,
		}

		for _, topic := range []string{"app/uninstalled", "orders/updated", "customers/update"} {
			address := base + "/v1/webhooks/shopify/" + strings.ReplaceAll(topic, "/", "_")
			id, err := client.CreateWebhook(r.Context(), topic, address)
			if err != nil {
				h.Logger.Warn().Err(err).Str("shop", s.Domain).Str("topic", topic).Msg("webhook registration failed")
				continue
			}
			if _, err := h.WebhookConfigs.Upsert(r.Context(), s.ID, topic, address, id); err != nil {
				h.Logger.Warn().Err(err).Str("shop", s.Domain).Str("topic", topic).Msg("webhook config save failed")
			}
		}
	}

	_, _ = w.Write([]byte("installed"))
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
