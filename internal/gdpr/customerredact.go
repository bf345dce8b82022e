package gdpr

import (
	"context"
	"fmt"

	"b3acon/internal/audit"
)

const RequestTypeCustomerRedact = "customers_redact"

type CustomerRedactRequest struct {
	ShopDomain     string
	CustomerID     string
	CustomerEmail  string
	OrdersToRedact []string
}

type CustomerRedactSummary struct {
	CustomerDeleted bool
	OrdersAffected  int64
	DeletionType    string
}

// RedactCustomer serves a right-of-erasure request for one customer. The
// customer profile row is deleted, then exactly one of two order paths runs:
// hard deletion of the explicitly named orders, or anonymization of every
// order matching the customer's email. Customer-scoped analytics rows go
// best-effort at the end.
func (s *Service) RedactCustomer(ctx context.Context, req CustomerRedactRequest) (*CustomerRedactSummary, error) {
	sh, err := s.Shops.FindByDomain(ctx, req.ShopDomain)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrShopNotFound, req.ShopDomain)
		}
		return nil, err
	}

	mode := redactionModeFor(req.OrdersToRedact)

	deleted, err := s.Customers.DeleteByShopifyID(ctx, sh.ID, req.CustomerID)
	if err != nil {
		s.logFailure(ctx, RequestTypeCustomerRedact, sh.Domain, req, err)
		return nil, err
	}

	var ordersAffected int64
	switch mode.Type {
	case DeletionTypeComplete:
		ordersAffected, err = s.Orders.DeleteByShopifyIDs(ctx, sh.ID, mode.OrderIDs)
	case DeletionTypeAnonymization:
		ordersAffected, err = s.Orders.AnonymizeByCustomerEmail(ctx, sh.ID, req.CustomerEmail)
	}
	if err != nil {
		s.logFailure(ctx, RequestTypeCustomerRedact, sh.Domain, req, err)
		return nil, err
	}

	analyticsDeleted, err := s.Analytics.DeleteByCustomer(ctx, sh.ID, req.CustomerID)
	if err != nil {
		// Non-fatal: analytics rows are derived data; the regulated records are gone.
		s.Logger.Warn().Err(err).
			Str("shop", sh.Domain).
			Str("customer_id", req.CustomerID).
			Msg("customer redact: analytics cleanup failed")
	}

	summary := &CustomerRedactSummary{
		CustomerDeleted: deleted > 0,
		OrdersAffected:  ordersAffected,
		DeletionType:    mode.Type,
	}

	s.logRequest(ctx, audit.Entry{
		RequestType:   RequestTypeCustomerRedact,
		ShopDomain:    sh.Domain,
		CustomerID:    strPtr(req.CustomerID),
		CustomerEmail: strPtr(req.CustomerEmail),
		RequestData: map[string]any{
			"deletion_type":     mode.Type,
			"customer_deleted":  summary.CustomerDeleted,
			"orders_affected":   ordersAffected,
			"orders_to_redact":  req.OrdersToRedact,
			"analytics_deleted": analyticsDeleted,
		},
		Status: StatusCompleted,
	})
	return summary, nil
}

func (s *Service) logFailure(ctx context.Context, requestType, shopDomain string, req CustomerRedactRequest, cause error) {
	s.logRequest(ctx, audit.Entry{
		RequestType:   requestType,
		ShopDomain:    shopDomain,
		CustomerID:    strPtr(req.CustomerID),
		CustomerEmail: strPtr(req.CustomerEmail),
		RequestData:   map[string]any{"error": cause.Error()},
		Status:        StatusFailed,
	})
}
