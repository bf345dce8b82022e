package shop

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var ErrNotFound = errors.New("shop not found")

type Shop struct {
	ID          string
	Domain      string
	AccessToken string
	Plan        string
	Status      string
	InstalledAt time.Time
	LastSyncAt  *time.Time
}

// NormalizeDomain converts any shop identifier Shopify hands us (webhook
// headers, OAuth query params, proxy params) into the stored form: lowercase,
// no scheme, no trailing slash, and without the ".myshopify.com" suffix.
// Examples:
//   "My-Store.myshopify.com" -> "my-store"
//   "https://my-store.myshopify.com/" -> "my-store"
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimSuffix(d, "/")
	d = strings.TrimSuffix(d, ".myshopify.com")
	return d
}

// APIDomain returns the full myshopify domain for Admin API calls.
func APIDomain(normalized string) string {
	if normalized == "" || strings.Contains(normalized, ".") {
		return normalized
	}
	return normalized + ".myshopify.com"
}
