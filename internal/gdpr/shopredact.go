package gdpr

import (
	"context"

	"b3acon/internal/audit"
)

const RequestTypeShopRedact = "shop_redact"

// Deletion order matters: dependent tables first, tenant row last, so no table
// is removed before the rows that reference it.
const (
	TableAnalytics      = "analytics_events"
	TableWebhookConfigs = "webhook_configs"
	TableCustomers      = "customers"
	TableOrders         = "orders"
	TableProducts       = "products"
	TableShops          = "shops"
)

type ShopRedactSummary struct {
	AlreadyDeleted      bool
	TotalRecordsDeleted int64
	StoreDeleted        bool
	HasErrors           bool
	Breakdown           []TableResult
}

// CountsByTable flattens the breakdown for response bodies.
func (s *ShopRedactSummary) CountsByTable() map[string]int64 {
	return countsByTable(s.Breakdown)
}

// RedactShop erases every record held for a tenant. An unknown domain is an
// idempotent success: Shopify retries shop/redact after the store is gone.
// Each table's deletion is attempted independently; one failure never blocks
// the remaining tables, and the full per-table breakdown is audited
// regardless of partial failure.
func (s *Service) RedactShop(ctx context.Context, shopDomain string) (*ShopRedactSummary, error) {
	sh, err := s.Shops.FindByDomain(ctx, shopDomain)
	if err != nil {
		if isNotFound(err) {
			s.logRequest(ctx, audit.Entry{
				RequestType: RequestTypeShopRedact,
				ShopDomain:  shopDomain,
				RequestData: map[string]any{"already_deleted": true},
				Status:      StatusCompleted,
			})
			return &ShopRedactSummary{AlreadyDeleted: true}, nil
		}
		return nil, err
	}

	steps := []struct {
		table  string
		delete func(context.Context, string) (int64, error)
	}{
		{TableAnalytics, s.Analytics.DeleteByShop},
		{TableWebhookConfigs, s.WebhookConfigs.DeleteByShop},
		{TableCustomers, s.Customers.DeleteByShop},
		{TableOrders, s.Orders.DeleteByShop},
		{TableProducts, s.Products.DeleteByShop},
	}

	results := make([]TableResult, 0, len(steps)+1)
	for _, step := range steps {
		n, err := step.delete(ctx, sh.ID)
		if err != nil {
			s.Logger.Error().Err(err).
				Str("shop", sh.Domain).
				Str("table", step.table).
				Msg("shop redact: table deletion failed")
			results = append(results, TableResult{Table: step.table, Error: err.Error()})
			continue
		}
		results = append(results, TableResult{Table: step.table, Deleted: true, Count: n})
	}

	storeDeleted := false
	if n, err := s.Shops.DeleteByID(ctx, sh.ID); err != nil {
		s.Logger.Error().Err(err).Str("shop", sh.Domain).Msg("shop redact: shop row deletion failed")
		results = append(results, TableResult{Table: TableShops, Error: err.Error()})
	} else {
		storeDeleted = n > 0
		results = append(results, TableResult{Table: TableShops, Deleted: true, Count: n})
	}

	summary := &ShopRedactSummary{
		TotalRecordsDeleted: totalDeleted(results),
		StoreDeleted:        storeDeleted,
		HasErrors:           anyErrors(results),
		Breakdown:           results,
	}

	s.logRequest(ctx, audit.Entry{
		RequestType: RequestTypeShopRedact,
		ShopDomain:  sh.Domain,
		RequestData: map[string]any{
			"total_records_deleted": summary.TotalRecordsDeleted,
			"store_deleted":         summary.StoreDeleted,
			"has_errors":            summary.HasErrors,
			"breakdown":             results,
		},
		Status: StatusCompleted,
	})
	return summary, nil
}
