package webhook

import (
	"encoding/json"
	"net/http"
)

// writeProcessed is the single place post-authentication outcomes become HTTP.
// Once a delivery's signature has been verified, Shopify always gets a 200:
// a non-200 would trigger redelivery, and redelivering an already-attempted
// erasure buys nothing. The body's success flag carries the real outcome.
func writeProcessed(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

func writeProcessingFailure(w http.ResponseWriter) {
	writeProcessed(w, map[string]any{"success": false})
}
