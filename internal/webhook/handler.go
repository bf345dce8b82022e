package webhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"b3acon/internal/api"
	"b3acon/internal/gdpr"
	"b3acon/internal/shop"
)

type EventStore interface {
	MarkProcessed(ctx context.Context, shopDomain, topic, eventID, payloadHash string) (bool, error)
}

// Handler is the single entry point for Shopify webhook deliveries, including
// the mandatory GDPR topics. It verifies the delivery, gates duplicates, and
// hands the payload to the matching workflow.
type Handler struct {
	Verifier Verifier
	Events   EventStore
	GDPR     *gdpr.Service
	Logger   zerolog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Prefer Shopify's topic header; fall back to route param.
	topic := strings.TrimSpace(r.Header.Get("X-Shopify-Topic"))
	if topic == "" {
		topic = chi.URLParam(r, "topic")
	}
	topic = NormalizeTopic(topic)

	headerDomain := strings.TrimSpace(r.Header.Get("X-Shopify-Shop-Domain"))
	hmacHeader := strings.TrimSpace(r.Header.Get("X-Shopify-Hmac-Sha256"))
	eventID := strings.TrimSpace(r.Header.Get("X-Shopify-Webhook-Id"))
	if eventID == "" {
		eventID = strings.TrimSpace(r.Header.Get("X-Shopify-Event-Id"))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	defer r.Body.Close()

	// Authenticity first: nothing below runs on an unverified delivery.
	if !h.Verifier.Verify(body, hmacHeader) {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid webhook signature")
		return
	}

	payloadHash := sha256Hex(body)
	if eventID == "" {
		// Fallback idempotency key when webhook-id header isn't present.
		eventID = payloadHash
	}

	switch topic {
	case TopicAppUninstalled:
		h.handleUninstall(w, r, headerDomain, topic, eventID, payloadHash)
	case TopicCustomerDataRequest:
		h.handleDataRequest(w, r, headerDomain, topic, eventID, payloadHash, body)
	case TopicCustomerRedact:
		h.handleCustomerRedact(w, r, headerDomain, topic, eventID, payloadHash, body)
	case TopicShopRedact:
		h.handleShopRedact(w, r, headerDomain, topic, eventID, payloadHash, body)
	default:
		// Unknown topic: accept (no retries).
		writeProcessed(w, map[string]any{"success": true})
	}
}

func (h Handler) handleUninstall(w http.ResponseWriter, r *http.Request, shopDomain, topic, eventID, payloadHash string) {
	if shopDomain == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing shop domain")
		return
	}
	if h.isDuplicate(r.Context(), shopDomain, topic, eventID, payloadHash) {
		writeProcessed(w, map[string]any{"success": true, "duplicate": true})
		return
	}

	res, err := h.GDPR.Uninstall(r.Context(), shopDomain)
	if err != nil {
		writeProcessed(w, map[string]any{"success": false, "shop": res.ShopDomain})
		return
	}
	writeProcessed(w, map[string]any{"success": true, "shop": res.ShopDomain})
}

func (h Handler) handleDataRequest(w http.ResponseWriter, r *http.Request, shopDomain, topic, eventID, payloadHash string, body []byte) {
	if shopDomain == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing shop domain")
		return
	}
	p, ok := parseDataRequest(body)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid customer payload")
		return
	}
	if h.isDuplicate(r.Context(), shopDomain, topic, eventID, payloadHash) {
		writeProcessed(w, map[string]any{"success": true, "duplicate": true})
		return
	}

	summary, err := h.GDPR.CompileDataRequest(r.Context(), gdpr.DataRequest{
		ShopDomain:      shopDomain,
		CustomerID:      p.Customer.ID.String(),
		CustomerEmail:   p.Customer.Email,
		OrdersRequested: p.OrdersRequested,
	})
	if err != nil {
		if errors.Is(err, gdpr.ErrShopNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "shop not found")
			return
		}
		h.Logger.Error().Err(err).Str("shop", shopDomain).Msg("data request failed")
		writeProcessingFailure(w)
		return
	}

	writeProcessed(w, map[string]any{
		"success":        true,
		"customer_email": summary.CustomerEmail,
		"data_summary": map[string]any{
			"customer_profile": summary.CustomerProfile,
			"orders_count":     summary.OrdersCount,
		},
	})
}

func (h Handler) handleCustomerRedact(w http.ResponseWriter, r *http.Request, shopDomain, topic, eventID, payloadHash string, body []byte) {
	if shopDomain == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing shop domain")
		return
	}
	p, ok := parseCustomerRedact(body)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid customer payload")
		return
	}
	if h.isDuplicate(r.Context(), shopDomain, topic, eventID, payloadHash) {
		writeProcessed(w, map[string]any{"success": true, "duplicate": true})
		return
	}

	summary, err := h.GDPR.RedactCustomer(r.Context(), gdpr.CustomerRedactRequest{
		ShopDomain:     shopDomain,
		CustomerID:     p.Customer.ID.String(),
		CustomerEmail:  p.Customer.Email,
		OrdersToRedact: p.orderIDs(),
	})
	if err != nil {
		if errors.Is(err, gdpr.ErrShopNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "shop not found")
			return
		}
		h.Logger.Error().Err(err).Str("shop", shopDomain).Msg("customer redact failed")
		writeProcessingFailure(w)
		return
	}

	writeProcessed(w, map[string]any{
		"success": true,
		"deletion_summary": map[string]any{
			"customer_deleted": summary.CustomerDeleted,
			"orders_affected":  summary.OrdersAffected,
			"deletion_type":    summary.DeletionType,
		},
	})
}

func (h Handler) handleShopRedact(w http.ResponseWriter, r *http.Request, headerDomain, topic, eventID, payloadHash string, body []byte) {
	p, ok := parseShopRedact(body)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload")
		return
	}
	shopDomain := strings.TrimSpace(p.ShopDomain)
	if shopDomain == "" {
		shopDomain = headerDomain
	}
	if shopDomain == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing shop domain")
		return
	}
	if h.isDuplicate(r.Context(), shopDomain, topic, eventID, payloadHash) {
		writeProcessed(w, map[string]any{"success": true, "duplicate": true})
		return
	}

	summary, err := h.GDPR.RedactShop(r.Context(), shopDomain)
	if err != nil {
		h.Logger.Error().Err(err).Str("shop", shopDomain).Msg("shop redact failed")
		writeProcessingFailure(w)
		return
	}
	if summary.AlreadyDeleted {
		writeProcessed(w, map[string]any{
			"success": true,
			"message": "store not found; already deleted",
		})
		return
	}

	writeProcessed(w, map[string]any{
		"success": true,
		"deletion_summary": map[string]any{
			"total_records_deleted": summary.TotalRecordsDeleted,
			"store_deleted":         summary.StoreDeleted,
			"has_errors":            summary.HasErrors,
			"breakdown":             summary.CountsByTable(),
		},
	})
}

// isDuplicate runs the idempotency gate. The gate itself is best-effort: if
// the insert fails the delivery is still processed, since every downstream
// mutation is safe to repeat.
func (h Handler) isDuplicate(ctx context.Context, shopDomain, topic, eventID, payloadHash string) bool {
	if h.Events == nil {
		return false
	}
	isNew, err := h.Events.MarkProcessed(ctx, shop.NormalizeDomain(shopDomain), topic, eventID, payloadHash)
	if err != nil {
		h.Logger.Warn().Err(err).Str("shop", shopDomain).Str("topic", topic).Msg("webhook event gate failed")
		return false
	}
	if !isNew {
		h.Logger.Info().Str("shop", shopDomain).Str("topic", topic).Str("event_id", eventID).Msg("webhook already processed")
	}
	return !isNew
}

func sha256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
