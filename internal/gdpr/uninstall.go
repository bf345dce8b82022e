package gdpr

import (
	"context"
	"time"

	"b3acon/internal/audit"
)

const RequestTypeUninstall = "app_uninstalled"

type UninstallResult struct {
	ShopDomain  string
	Deactivated bool
}

// Uninstall marks the shop inactive and stamps the last-sync time. It is
// best-effort housekeeping: an unknown shop is simply nothing to deactivate,
// and a failed update is logged without asking Shopify to redeliver.
func (s *Service) Uninstall(ctx context.Context, shopDomain string) (UninstallResult, error) {
	res := UninstallResult{ShopDomain: shopDomain}

	sh, err := s.Shops.FindByDomain(ctx, shopDomain)
	if err != nil {
		if isNotFound(err) {
			s.Logger.Warn().Str("shop", shopDomain).Msg("uninstall: shop unknown; nothing to deactivate")
			return res, nil
		}
		s.Logger.Error().Err(err).Str("shop", shopDomain).Msg("uninstall: shop lookup failed")
		return res, err
	}

	now := time.Now()
	if err := s.Shops.Deactivate(ctx, sh.ID, now); err != nil {
		s.Logger.Error().Err(err).Str("shop", sh.Domain).Msg("uninstall: deactivate failed")
		s.logRequest(ctx, audit.Entry{
			RequestType: RequestTypeUninstall,
			ShopDomain:  sh.Domain,
			RequestData: map[string]any{"deactivated": false, "error": err.Error()},
			Status:      StatusFailed,
		})
		return res, err
	}

	res.Deactivated = true
	s.logRequest(ctx, audit.Entry{
		RequestType: RequestTypeUninstall,
		ShopDomain:  sh.Domain,
		RequestData: map[string]any{"deactivated": true, "last_sync_at": now.UTC()},
		Status:      StatusCompleted,
	})
	return res, nil
}
