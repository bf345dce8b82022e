package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/rs/zerolog"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v := Verifier{Secret: "shpss_test", Logger: zerolog.Nop()}
	body := []byte(`{"shop_domain":"acme.myshopify.com"}`)
	if !v.Verify(body, signBody("shpss_test", body)) {
		t.Fatal("valid signature rejected")
	}
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	v := Verifier{Secret: "shpss_test", Logger: zerolog.Nop()}
	sig := signBody("shpss_test", []byte(`{"customer":{"id":1}}`))
	if v.Verify([]byte(`{"customer":{"id":2}}`), sig) {
		t.Fatal("tampered body accepted")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := Verifier{Secret: "shpss_test", Logger: zerolog.Nop()}
	body := []byte(`{}`)
	if v.Verify(body, signBody("other-secret", body)) {
		t.Fatal("signature from wrong secret accepted")
	}
}

func TestVerifyRejectsMissingSignature(t *testing.T) {
	v := Verifier{Secret: "shpss_test", Logger: zerolog.Nop()}
	if v.Verify([]byte(`{}`), "") {
		t.Fatal("missing signature accepted")
	}
}

func TestVerifyFailsOpenWithoutSecret(t *testing.T) {
	v := Verifier{Logger: zerolog.Nop()}
	if !v.Verify([]byte(`{}`), "") {
		t.Fatal("unverified delivery rejected without a configured secret")
	}
}

func TestVerifyStrictRejectsWithoutSecret(t *testing.T) {
	v := Verifier{Strict: true, Logger: zerolog.Nop()}
	if v.Verify([]byte(`{}`), signBody("anything", []byte(`{}`))) {
		t.Fatal("strict mode accepted a delivery with no configured secret")
	}
}
