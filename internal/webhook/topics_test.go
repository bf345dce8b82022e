package webhook

import "testing"

func TestNormalizeTopic(t *testing.T) {
	cases := map[string]string{
		"customers/redact":        TopicCustomerRedact,
		"customers/data_request":  TopicCustomerDataRequest,
		"app/uninstalled":         TopicAppUninstalled,
		"shop/redact":             TopicShopRedact,
		"SHOP/REDACT":             TopicShopRedact,
		" customers/redact ":      TopicCustomerRedact,
		"customers-data-request":  TopicCustomerDataRequest,
		"customers//data_request": TopicCustomerDataRequest,
		"orders/create":           "orders_create",
		"":                        "",
	}
	for in, want := range cases {
		if got := NormalizeTopic(in); got != want {
			t.Fatalf("NormalizeTopic(%q) = %q, want %q", in, got, want)
		}
	}
}
