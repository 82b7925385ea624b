package payments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
)

// OrderStore is the slice of the record store the reconciler needs: an
// idempotent partial update keyed by the external reference.
type OrderStore interface {
	UpdateOrder(ctx context.Context, id string, patch orders.Patch) error
}

// Reconciler resolves payment notifications to a gateway outcome and applies
// it to the order record. It is the only writer of order status; the client
// never mutates the record directly.
type Reconciler struct {
	gateway Gateway
	store   OrderStore
	logger  *slog.Logger
}

func NewReconciler(gateway Gateway, store OrderStore) *Reconciler {
	return &Reconciler{gateway: gateway, store: store, logger: slog.Default()}
}

func (r *Reconciler) SetLogger(logger *slog.Logger) { r.logger = logger }

// Handle processes one notification. It never reports failure to the caller:
// the webhook channel's job is delivery, and signaling failure for a
// transient outcome lookup or record update would only make the gateway
// retry for the wrong reason. Failures are visible in logs and through the
// absence of the record mutation; the gateway's own redelivery and the
// client-side poller recover from them.
func (r *Reconciler) Handle(ctx context.Context, n Notification) {
	log := r.logger.With(
		"event_id", uuid.NewString(),
		"kind", n.Kind,
		"payment_id", n.PaymentID,
	)

	if n.PaymentID == "" {
		log.InfoContext(ctx, "notification without payment id, acknowledged")
		return
	}
	if n.Kind != "" && n.Kind != KindPayment {
		log.InfoContext(ctx, "non-payment notification, acknowledged")
		return
	}

	out, err := r.gateway.GetPayment(ctx, n.PaymentID)
	if err != nil {
		// Transient: the gateway redelivers the notification on its own.
		log.WarnContext(ctx, "payment lookup failed, acknowledged", "err", err)
		return
	}
	if out.ExternalReference == "" {
		log.WarnContext(ctx, "outcome has no external reference, dropped",
			"mp_status", out.Status, "merchant_order_id", out.MerchantOrderID)
		return
	}

	status := MapStatus(out.Status)
	patch := orders.Patch{
		Status:      &status,
		MPPaymentID: &out.PaymentID,
		MPStatus:    &out.Status,
	}
	if number, ok := orders.NumberFromRef(out.ExternalReference); ok {
		patch.OrderNumber = &number
	}

	if err := r.store.UpdateOrder(ctx, out.ExternalReference, patch); err != nil {
		log.ErrorContext(ctx, "order update failed, acknowledged anyway",
			"order_id", out.ExternalReference, "order_status", status, "err", err)
		return
	}

	log.InfoContext(ctx, "order reconciled",
		"order_id", out.ExternalReference,
		"order_status", status,
		"mp_status", out.Status,
		"status_detail", out.StatusDetail,
	)
}
