package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, domain, accessToken string) (*Shop, error) {
	const q = `
INSERT INTO shops (shop_domain, access_token, status)
VALUES ($1, $2, 'active')
ON CONFLICT (shop_domain) DO UPDATE SET
  access_token = EXCLUDED.access_token,
  status = 'active'
RETURNING id, shop_domain, access_token, COALESCE(plan,''), COALESCE(status,'active'), installed_at, last_sync_at
`
	s := &Shop{}
	if err := r.db.QueryRow(ctx, q, NormalizeDomain(domain), accessToken).Scan(
		&s.ID, &s.Domain, &s.AccessToken, &s.Plan, &s.Status, &s.InstalledAt, &s.LastSyncAt,
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) FindByDomain(ctx context.Context, domain string) (*Shop, error) {
	const q = `
SELECT id, shop_domain, access_token, COALESCE(plan,''), COALESCE(status,'active'), installed_at, last_sync_at
FROM shops
WHERE shop_domain = $1
`
	s := &Shop{}
	if err := r.db.QueryRow(ctx, q, NormalizeDomain(domain)).Scan(
		&s.ID, &s.Domain, &s.AccessToken, &s.Plan, &s.Status, &s.InstalledAt, &s.LastSyncAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, NormalizeDomain(domain))
		}
		return nil, err
	}
	return s, nil
}

// Deactivate soft-deletes the shop on app uninstall: data is retained until a
// shop/redact request arrives (or the merchant reinstalls).
func (r *Repository) Deactivate(ctx context.Context, id string, lastSyncAt time.Time) error {
	const q = `UPDATE shops SET status = 'inactive', last_sync_at = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id, lastSyncAt)
	return err
}

func (r *Repository) DeleteByID(ctx context.Context, id string) (int64, error) {
	const q = `DELETE FROM shops WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
