package payments

import (
	"strings"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
)

// MapStatus translates the gateway's status vocabulary into the order
// status. Total: every input maps to exactly one output, and anything the
// table doesn't know (pending, in_process, future values, empty) stays
// pending.
func MapStatus(gatewayStatus string) orders.Status {
	switch strings.ToLower(strings.TrimSpace(gatewayStatus)) {
	case "approved":
		return orders.StatusPaid
	case "rejected":
		return orders.StatusFailed
	case "cancelled":
		return orders.StatusCancelled
	default:
		return orders.StatusPending
	}
}
