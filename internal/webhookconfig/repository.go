package webhookconfig

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Record struct {
	ID               string    `json:"id"`
	ShopID           string    `json:"shopId"`
	Topic            string    `json:"topic"`
	Address          string    `json:"address"`
	ShopifyWebhookID int64     `json:"shopifyWebhookId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, shopID, topic, address string, shopifyWebhookID int64) (*Record, error) {
	const q = `
INSERT INTO webhook_configs (shop_id, topic, address, shopify_webhook_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (shop_id, topic) DO UPDATE SET
  address = EXCLUDED.address,
  shopify_webhook_id = EXCLUDED.shopify_webhook_id
RETURNING id, shop_id, topic, address, COALESCE(shopify_webhook_id, 0), created_at
`
	rec := &Record{}
	if err := r.db.QueryRow(ctx, q, shopID, topic, address, shopifyWebhookID).Scan(
		&rec.ID, &rec.ShopID, &rec.Topic, &rec.Address, &rec.ShopifyWebhookID, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) DeleteByShop(ctx context.Context, shopID string) (int64, error) {
	const q = `DELETE FROM webhook_configs WHERE shop_id = $1`
	tag, err := r.db.Exec(ctx, q, shopID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
