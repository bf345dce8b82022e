package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// VerifySignedQuery verifies a hex HMAC-SHA256 computed over the query string.
// Shopify signs the parameters (excluding hmac and signature) sorted
// lexicographically by key and joined as key=value pairs with "&". The same
// scheme covers both the OAuth callback (hmac param) and app proxy requests
// (signature param).
func VerifySignedQuery(values url.Values, secret, sigParam string) bool {
	given := values.Get(sigParam)
	if given == "" || secret == "" {
		return false
	}

	var keys []string
	for k := range values {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, v := range values[k] {
			parts = append(parts, k+"="+strings.ReplaceAll(v, "&", "%26"))
		}
	}
	msg := strings.Join(parts, "&")

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(msg))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(given))
}

// VerifyOAuthHMAC verifies Shopify's OAuth callback HMAC. Always
// fail-closed: an install with no API secret configured cannot proceed anyway.
func VerifyOAuthHMAC(values url.Values, apiSecret string) bool {
	return VerifySignedQuery(values, apiSecret, "hmac")
}

// VerifyProxySignature verifies an app proxy request. It carries the same
// fail-open policy as webhook verification: with no secret configured and
// strict mode off, requests are accepted unverified with a logged warning.
func VerifyProxySignature(values url.Values, apiSecret string, strict bool, logger zerolog.Logger) bool {
	if apiSecret == "" {
		if strict {
			return false
		}
		logger.Warn().Msg("api secret not configured; accepting unverified proxy request")
		return true
	}
	return VerifySignedQuery(values, apiSecret, "signature")
}
