package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
)

func signQuery(msg, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignedQuery_SortsKeysAndExcludesSignatureParams(t *testing.T) {
	secret := "shh"
	values := url.Values{}
	values.Set("shop", "my-store.myshopify.com")
	values.Set("code", "abc")
	values.Set("timestamp", "1700000000")
	// Keys sorted lexicographically: code, shop, timestamp.
	msg := "code=abc&shop=my-store.myshopify.com&timestamp=1700000000"
	values.Set("hmac", signQuery(msg, secret))

	if !VerifySignedQuery(values, secret, "hmac") {
		t.Fatalf("expected valid signature")
	}

	values.Set("code", "tampered")
	if VerifySignedQuery(values, secret, "hmac") {
		t.Fatalf("expected tampered query to fail")
	}
}

func TestVerifySignedQuery_MissingSignatureOrSecret(t *testing.T) {
	values := url.Values{"shop": {"x"}}
	if VerifySignedQuery(values, "secret", "hmac") {
		t.Fatalf("expected missing signature to fail")
	}
	values.Set("hmac", "deadbeef")
	if VerifySignedQuery(values, "", "hmac") {
		t.Fatalf("expected missing secret to fail")
	}
}

func TestVerifyProxySignature_SignatureParam(t *testing.T) {
	secret := "shh"
	values := url.Values{}
	values.Set("shop", "my-store.myshopify.com")
	values.Set("path_prefix", "/apps/b3acon")
	msg := "path_prefix=/apps/b3acon&shop=my-store.myshopify.com"
	values.Set("signature", signQuery(msg, secret))

	if !VerifyProxySignature(values, secret, false, zerolog.Nop()) {
		t.Fatalf("expected valid proxy signature")
	}
}

func TestVerifyProxySignature_FailOpenWithoutSecret(t *testing.T) {
	values := url.Values{"shop": {"my-store.myshopify.com"}}

	if !VerifyProxySignature(values, "", false, zerolog.Nop()) {
		t.Fatalf("expected fail-open accept when secret unset and strict off")
	}
	if VerifyProxySignature(values, "", true, zerolog.Nop()) {
		t.Fatalf("expected strict mode to reject when secret unset")
	}
}
