package gdpr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"b3acon/internal/audit"
	"b3acon/internal/customer"
	"b3acon/internal/shop"
)

const (
	RequestTypeDataRequest = "customers_data_request"

	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type DataRequest struct {
	ShopDomain      string
	CustomerID      string
	CustomerEmail   string
	OrdersRequested bool
}

// DataRequestSummary is what goes back over HTTP: a confirmation, not the
// data. The compiled profile/orders payload is persisted on the audit row for
// out-of-band delivery to the merchant.
type DataRequestSummary struct {
	RequestRef      string
	CustomerEmail   string
	CustomerProfile bool
	OrdersCount     int
}

type orderSummary struct {
	ShopifyOrderID  string    `json:"shopify_order_id"`
	TotalPrice      string    `json:"total_price"`
	Currency        string    `json:"currency"`
	FinancialStatus string    `json:"financial_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CompileDataRequest serves a right-of-access request: it reads (never writes)
// the customer's stored data and persists the compiled result as the audit
// entry's payload. Returns ErrShopNotFound for unknown tenants; callers must
// not log anything in that case.
func (s *Service) CompileDataRequest(ctx context.Context, req DataRequest) (*DataRequestSummary, error) {
	sh, err := s.Shops.FindByDomain(ctx, req.ShopDomain)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrShopNotFound, req.ShopDomain)
		}
		return nil, err
	}

	summary := &DataRequestSummary{
		RequestRef:    uuid.NewString(),
		CustomerEmail: req.CustomerEmail,
	}
	payload := map[string]any{
		"request_ref":      summary.RequestRef,
		"orders_requested": req.OrdersRequested,
	}

	prof, err := s.Customers.FindByShopifyID(ctx, sh.ID, req.CustomerID)
	switch {
	case err == nil:
		summary.CustomerProfile = true
		payload["customer_profile"] = prof
	case errors.Is(err, customer.ErrNotFound):
		payload["customer_profile"] = nil
	default:
		return nil, err
	}

	if req.OrdersRequested {
		orders, err := s.Orders.ListByCustomerEmail(ctx, sh.ID, req.CustomerEmail)
		if err != nil {
			return nil, err
		}
		summaries := make([]orderSummary, 0, len(orders))
		lifetime := decimal.Zero
		for _, o := range orders {
			summaries = append(summaries, orderSummary{
				ShopifyOrderID:  o.ShopifyOrderID,
				TotalPrice:      o.TotalPrice.StringFixed(2),
				Currency:        o.Currency,
				FinancialStatus: o.FinancialStatus,
				CreatedAt:       o.CreatedAt,
			})
			lifetime = lifetime.Add(o.TotalPrice)
		}
		summary.OrdersCount = len(summaries)
		payload["orders"] = summaries
		payload["orders_total"] = lifetime.StringFixed(2)
	}

	s.logRequest(ctx, audit.Entry{
		RequestType:   RequestTypeDataRequest,
		ShopDomain:    sh.Domain,
		CustomerID:    strPtr(req.CustomerID),
		CustomerEmail: strPtr(req.CustomerEmail),
		RequestData:   payload,
		Status:        StatusCompleted,
	})
	return summary, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shop.ErrNotFound) || errors.Is(err, ErrShopNotFound)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
