package audit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"b3acon/internal/api"
)

type Handlers struct {
	Repo   *Repository
	Logger zerolog.Logger
}

// List returns the shop's GDPR request log, newest first. This backs the
// dashboard compliance view.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	s := api.ShopFromContext(r.Context())
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing shop identity")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Repo.ListByShopDomain(r.Context(), s.Domain, limit)
	if err != nil {
		h.Logger.Error().Err(err).Str("shop", s.Domain).Msg("list gdpr request logs failed")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}
