package payments

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// KindPayment is the only notification kind acted upon; everything else is
// acknowledged and dropped.
const KindPayment = "payment"

// Notification is an ephemeral pointer delivered by the gateway. It is never
// persisted and never trusted beyond the payment id it carries.
type Notification struct {
	Kind      string
	PaymentID string
}

// The gateway delivers the same ping in several shapes:
// ?type=payment&data.id=123, ?topic=payment&id=123, or a JSON body with
// {type, data:{id}}. Aliases are tried in order; first non-empty wins.
var (
	kindQueryAliases      = []string{"type", "topic"}
	paymentIDQueryAliases = []string{"data.id", "id", "data[id]", "payment_id"}
)

// ParseNotification resolves kind and payment id from query parameters and,
// failing that, from the request body. The body is often empty or not JSON;
// that is not an error.
func ParseNotification(query url.Values, body []byte) Notification {
	var n Notification

	for _, k := range kindQueryAliases {
		if v := query.Get(k); v != "" {
			n.Kind = v
			break
		}
	}
	for _, k := range paymentIDQueryAliases {
		if v := query.Get(k); v != "" {
			n.PaymentID = v
			break
		}
	}

	if n.Kind != "" && n.PaymentID != "" {
		return n
	}

	var m map[string]any
	if len(body) == 0 || json.Unmarshal(body, &m) != nil {
		return n
	}

	if n.Kind == "" {
		if s, ok := m["type"].(string); ok {
			n.Kind = s
		}
	}
	if n.PaymentID == "" {
		if data, ok := m["data"].(map[string]any); ok {
			n.PaymentID = coerceID(data["id"])
		}
	}
	if n.PaymentID == "" {
		n.PaymentID = coerceID(m["id"])
	}
	return n
}

// coerceID: the gateway sends ids as strings in some payloads and numbers in
// others.
func coerceID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
