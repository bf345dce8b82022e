package shopify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type webhookCreateRequest struct {
	Webhook webhookPayload `json:"webhook"`
}

type webhookPayload struct {
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

type webhookCreateResponse struct {
	Webhook struct {
		ID int64 `json:"id"`
	} `json:"webhook"`
}

// CreateWebhook registers a webhook subscription and returns its Shopify id.
// Note: the GDPR compliance topics (customers/data_request, customers/redact,
// shop/redact) are configured in the Partner dashboard, not via this API;
// this call is used for lifecycle topics such as app/uninstalled.
func (c Client) CreateWebhook(ctx context.Context, topic string, address string) (int64, error) {
	topic = strings.TrimSpace(topic)
	address = strings.TrimSpace(address)
	if topic == "" || address == "" {
		return 0, fmt.Errorf("missing topic or address")
	}

	req := webhookCreateRequest{
		Webhook: webhookPayload{
			Topic:   topic,
			Address: address,
			Format:  "json",
		},
	}
	var resp webhookCreateResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/webhooks.json", req, &resp)
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 {
		return 0, fmt.Errorf("create webhook failed: status=%d", status)
	}
	return resp.Webhook.ID, nil
}
