package webhook

import (
	"encoding/json"
	"strings"
)

type customerRef struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
}

func (c customerRef) validate() bool {
	return strings.TrimSpace(c.ID.String()) != "" && strings.TrimSpace(c.Email) != ""
}

type dataRequestPayload struct {
	Customer        customerRef `json:"customer"`
	OrdersRequested bool        `json:"orders_requested"`
}

type customerRedactPayload struct {
	Customer       customerRef   `json:"customer"`
	OrdersToRedact []json.Number `json:"orders_to_redact"`
}

func (p customerRedactPayload) orderIDs() []string {
	if len(p.OrdersToRedact) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.OrdersToRedact))
	for _, n := range p.OrdersToRedact {
		s := strings.TrimSpace(n.String())
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

type shopRedactPayload struct {
	ShopID     json.Number `json:"shop_id"`
	ShopDomain string      `json:"shop_domain"`
}

func parseDataRequest(body []byte) (*dataRequestPayload, bool) {
	var p dataRequestPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if !p.Customer.validate() {
		return nil, false
	}
	return &p, true
}

func parseCustomerRedact(body []byte) (*customerRedactPayload, bool) {
	var p customerRedactPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	if !p.Customer.validate() {
		return nil, false
	}
	return &p, true
}

func parseShopRedact(body []byte) (*shopRedactPayload, bool) {
	var p shopRedactPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	return &p, true
}
