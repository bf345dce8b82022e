// Package gdpr implements the data-subject request workflows behind Shopify's
// mandatory compliance webhooks: app/uninstalled, customers/data_request,
// customers/redact and shop/redact.
//
// Every workflow follows the same shape: resolve the tenant, perform a bounded
// set of reads/deletions/anonymizations, write one audit row, report the
// outcome. Mutations are issued as independent statements (delete-if-exists,
// update-by-filter) so duplicate deliveries and partial failures stay safe
// without cross-table transactions.
package gdpr

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"b3acon/internal/audit"
	"b3acon/internal/customer"
	"b3acon/internal/order"
	"b3acon/internal/shop"
)

// ErrShopNotFound aborts customer-scoped workflows when the tenant is unknown.
// The shop/redact workflow treats the same condition as already-erased instead.
var ErrShopNotFound = errors.New("shop not found")

type ShopStore interface {
	FindByDomain(ctx context.Context, domain string) (*shop.Shop, error)
	Deactivate(ctx context.Context, id string, lastSyncAt time.Time) error
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type CustomerStore interface {
	FindByShopifyID(ctx context.Context, shopID, shopifyCustomerID string) (*customer.Record, error)
	DeleteByShopifyID(ctx context.Context, shopID, shopifyCustomerID string) (int64, error)
	DeleteByShop(ctx context.Context, shopID string) (int64, error)
}

type OrderStore interface {
	ListByCustomerEmail(ctx context.Context, shopID, email string) ([]order.Record, error)
	DeleteByShopifyIDs(ctx context.Context, shopID string, shopifyOrderIDs []string) (int64, error)
	AnonymizeByCustomerEmail(ctx context.Context, shopID, email string) (int64, error)
	DeleteByShop(ctx context.Context, shopID string) (int64, error)
}

type AnalyticsStore interface {
	DeleteByCustomer(ctx context.Context, shopID, shopifyCustomerID string) (int64, error)
	DeleteByShop(ctx context.Context, shopID string) (int64, error)
}

type WebhookConfigStore interface {
	DeleteByShop(ctx context.Context, shopID string) (int64, error)
}

type ProductStore interface {
	DeleteByShop(ctx context.Context, shopID string) (int64, error)
}

type RequestLog interface {
	Insert(ctx context.Context, e audit.Entry) error
}

type Service struct {
	Shops          ShopStore
	Customers      CustomerStore
	Orders         OrderStore
	Analytics      AnalyticsStore
	WebhookConfigs WebhookConfigStore
	Products       ProductStore
	Requests       RequestLog
	Logger         zerolog.Logger
}

// logRequest writes the audit row for a workflow. Best-effort: a logging
// failure must never change the outcome already computed for the caller.
func (s *Service) logRequest(ctx context.Context, e audit.Entry) {
	if err := s.Requests.Insert(ctx, e); err != nil {
		s.Logger.Warn().Err(err).
			Str("request_type", e.RequestType).
			Str("shop", e.ShopDomain).
			Msg("gdpr request log write failed")
	}
}
