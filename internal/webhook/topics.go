package webhook

import "strings"

// The four topics this service acts on. Everything else is acknowledged and
// dropped so Shopify does not retry.
const (
	TopicAppUninstalled      = "app_uninstalled"
	TopicCustomerDataRequest = "customers_data_request"
	TopicCustomerRedact      = "customers_redact"
	TopicShopRedact          = "shop_redact"
)

// NormalizeTopic converts Shopify topic strings (often like "customers/redact")
// into a stable internal form.
// Examples:
// - "customers/redact" -> "customers_redact"
// - "app/uninstalled" -> "app_uninstalled"
func NormalizeTopic(topic string) string {
	t := strings.TrimSpace(strings.ToLower(topic))
	t = strings.ReplaceAll(t, "/", "_")
	t = strings.ReplaceAll(t, ".", "_")
	t = strings.ReplaceAll(t, "-", "_")
	for strings.Contains(t, "__") {
		t = strings.ReplaceAll(t, "__", "_")
	}
	return strings.Trim(t, "_")
}
