package customer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("customer not found")

type Record struct {
	ID                string          `json:"id"`
	ShopID            string          `json:"shopId"`
	ShopifyCustomerID string          `json:"shopifyCustomerId"`
	Email             string          `json:"email"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	Phone             string          `json:"phone"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	OrdersCount       int             `json:"ordersCount"`
	AcceptsMarketing  bool            `json:"acceptsMarketing"`
	Tags              string          `json:"tags"`
	Addresses         json.RawMessage `json:"addresses,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByShopifyID(ctx context.Context, shopID, shopifyCustomerID string) (*Record, error) {
	const q = `
SELECT id, shop_id, shopify_customer_id, COALESCE(email,''), COALESCE(first_name,''), COALESCE(last_name,''),
       COALESCE(phone,''), total_spent::text, orders_count, accepts_marketing, COALESCE(tags,''), addresses,
       created_at, updated_at
FROM customers
WHERE shop_id = $1 AND shopify_customer_id = $2
`
	rec := &Record{}
	var spent string
	if err := r.db.QueryRow(ctx, q, shopID, shopifyCustomerID).Scan(
		&rec.ID, &rec.ShopID, &rec.ShopifyCustomerID, &rec.Email, &rec.FirstName, &rec.LastName,
		&rec.Phone, &spent, &rec.OrdersCount, &rec.AcceptsMarketing, &rec.Tags, &rec.Addresses,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	total, err := decimal.NewFromString(spent)
	if err != nil {
		total = decimal.Zero
	}
	rec.TotalSpent = total
	return rec, nil
}

func (r *Repository) DeleteByShopifyID(ctx context.Context, shopID, shopifyCustomerID string) (int64, error) {
	const q = `DELETE FROM customers WHERE shop_id = $1 AND shopify_customer_id = $2`
	tag, err := r.db.Exec(ctx, q, shopID, shopifyCustomerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) DeleteByShop(ctx context.Context, shopID string) (int64, error) {
	const q = `DELETE FROM customers WHERE shop_id = $1`
	tag, err := r.db.Exec(ctx, q, shopID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
