package gdpr

// TableResult is the outcome of one table's deletion attempt during shop
// erasure. Deleted=false with a non-empty Error means the statement failed;
// Deleted=true with Count=0 means there was nothing to remove.
type TableResult struct {
	Table   string `json:"table"`
	Deleted bool   `json:"deleted"`
	Count   int64  `json:"count"`
	Error   string `json:"error,omitempty"`
}

func totalDeleted(results []TableResult) int64 {
	var n int64
	for _, r := range results {
		n += r.Count
	}
	return n
}

func anyErrors(results []TableResult) bool {
	for _, r := range results {
		if r.Error != "" {
			return true
		}
	}
	return false
}

func countsByTable(results []TableResult) map[string]int64 {
	out := make(map[string]int64, len(results))
	for _, r := range results {
		out[r.Table] = r.Count
	}
	return out
}
