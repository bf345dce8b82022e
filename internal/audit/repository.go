package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one append-only gdpr_request_logs row. One row is written per
// webhook/GDPR invocation; rows are never updated or deleted, and the table
// carries no FK to shops so entries survive shop erasure.
type Entry struct {
	RequestType   string
	ShopDomain    string
	CustomerID    *string
	CustomerEmail *string
	RequestData   any
	Status        string
}

type Record struct {
	ID            string          `json:"id"`
	RequestType   string          `json:"requestType"`
	ShopDomain    string          `json:"shopDomain"`
	CustomerID    *string         `json:"customerId,omitempty"`
	CustomerEmail *string         `json:"customerEmail,omitempty"`
	RequestData   json.RawMessage `json:"requestData,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, e Entry) error {
	var data *string
	if e.RequestData != nil {
		b, _ := json.Marshal(e.RequestData)
		s := string(b)
		data = &s
	}
	const q = `
INSERT INTO gdpr_request_logs (request_type, shop_domain, customer_id, customer_email, request_data, status)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb), $6)
`
	_, err := r.db.Exec(ctx, q, e.RequestType, e.ShopDomain, e.CustomerID, e.CustomerEmail, data, e.Status)
	return err
}

func (r *Repository) ListByShopDomain(ctx context.Context, shopDomain string, limit int) ([]Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const q = `
SELECT id, request_type, shop_domain, customer_id, customer_email, request_data, status, created_at
FROM gdpr_request_logs
WHERE shop_domain = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.db.Query(ctx, q, shopDomain, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.RequestType, &rec.ShopDomain, &rec.CustomerID, &rec.CustomerEmail,
			&rec.RequestData, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
