package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DeleteByCustomer(ctx context.Context, shopID, shopifyCustomerID string) (int64, error) {
	const q = `DELETE FROM analytics_events WHERE shop_id = $1 AND shopify_customer_id = $2`
	tag, err := r.db.Exec(ctx, q, shopID, shopifyCustomerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) DeleteByShop(ctx context.Context, shopID string) (int64, error) {
	const q = `DELETE FROM analytics_events WHERE shop_id = $1`
	tag, err := r.db.Exec(ctx, q, shopID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
