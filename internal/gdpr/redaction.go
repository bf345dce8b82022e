package gdpr

const (
	DeletionTypeComplete      = "complete_deletion"
	DeletionTypeAnonymization = "anonymization"
)

// RedactionMode is decided once per customers/redact request: either the
// request names specific orders to hard-delete, or every matching order is
// anonymized in place. The two paths are mutually exclusive.
type RedactionMode struct {
	Type     string
	OrderIDs []string
}

func redactionModeFor(ordersToRedact []string) RedactionMode {
	if len(ordersToRedact) > 0 {
		return RedactionMode{Type: DeletionTypeComplete, OrderIDs: ordersToRedact}
	}
	return RedactionMode{Type: DeletionTypeAnonymization}
}
