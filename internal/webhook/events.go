package webhook

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventLog is the delivery idempotency gate. Rows are keyed by
// (shop_domain, event_id) rather than a shop FK so the gate works before
// tenant resolution and survives shop erasure.
type EventLog struct {
	DB *pgxpool.Pool
}

// MarkProcessed records the delivery and reports whether it was new.
// false means the same event id was already handled for this shop.
func (e EventLog) MarkProcessed(ctx context.Context, shopDomain, topic, eventID, payloadHash string) (bool, error) {
	const q = `
INSERT INTO webhook_events (shop_domain, topic, event_id, payload_hash, processed_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (shop_domain, event_id) DO NOTHING
`
	tag, err := e.DB.Exec(ctx, q, shopDomain, topic, eventID, payloadHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
