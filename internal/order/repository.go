package order

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RedactedMarker replaces direct PII fields during anonymization. Financial
// columns (total_price, currency, financial_status) are never touched so
// accounting history stays intact.
const RedactedMarker = "REDACTED"

type Record struct {
	ID              string          `json:"id"`
	ShopID          string          `json:"shopId"`
	ShopifyOrderID  string          `json:"shopifyOrderId"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerName    string          `json:"customerName"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Currency        string          `json:"currency"`
	FinancialStatus string          `json:"financialStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByCustomerEmail(ctx context.Context, shopID, email string) ([]Record, error) {
	const q = `
SELECT id, shop_id, shopify_order_id, COALESCE(customer_email,''), COALESCE(customer_name,''),
       total_price::text, COALESCE(currency,''), COALESCE(financial_status,''), created_at
FROM orders
WHERE shop_id = $1 AND customer_email = $2
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, q, shopID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var price string
		if err := rows.Scan(&rec.ID, &rec.ShopID, &rec.ShopifyOrderID, &rec.CustomerEmail, &rec.CustomerName,
			&price, &rec.Currency, &rec.FinancialStatus, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if p, err := decimal.NewFromString(price); err == nil {
			rec.TotalPrice = p
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteByShopifyIDs hard-deletes the designated orders. Used when a redact
// request names specific order ids; otherwise orders are anonymized in place.
func (r *Repository) DeleteByShopifyIDs(ctx context.Context, shopID string, shopifyOrderIDs []string) (int64, error) {
	if len(shopifyOrderIDs) == 0 {
		return 0, nil
	}
	const q = `DELETE FROM orders WHERE shop_id = $1 AND shopify_order_id = ANY($2)`
	tag, err := r.db.Exec(ctx, q, shopID, shopifyOrderIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// AnonymizeByCustomerEmail overwrites direct PII on every order matching the
// customer email. Addresses are nulled rather than marked: a marker string
// inside a jsonb address would still read as data.
func (r *Repository) AnonymizeByCustomerEmail(ctx context.Context, shopID, email string) (int64, error) {
	const q = `
UPDATE orders SET
  customer_email = $3,
  customer_name = $3,
  shipping_address = NULL,
  billing_address = NULL,
  updated_at = NOW()
WHERE shop_id = $1 AND customer_email = $2
`
	tag, err := r.db.Exec(ctx, q, shopID, email, RedactedMarker)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) DeleteByShop(ctx context.Context, shopID string) (int64, error) {
	const q = `DELETE FROM orders WHERE shop_id = $1`
	tag, err := r.db.Exec(ctx, q, shopID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
