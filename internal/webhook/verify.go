package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/rs/zerolog"
)

// Verifier checks that a webhook delivery genuinely came from Shopify.
// The signature header carries base64(HMAC_SHA256(raw body)) computed with the
// app's shared webhook secret.
//
// With no secret configured the verifier fails open by default: deliveries
// are accepted unverified with a logged warning. That keeps local dev working
// before secrets are provisioned; set Strict to reject instead (recommended
// for production).
type Verifier struct {
	Secret string
	Strict bool
	Logger zerolog.Logger
}

func (v Verifier) Verify(body []byte, hmacHeader string) bool {
	if v.Secret == "" {
		if v.Strict {
			return false
		}
		v.Logger.Warn().Msg("webhook secret not configured; accepting unverified delivery")
		return true
	}
	if hmacHeader == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.Secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(hmacHeader))
}
