package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/payments"
)

type WebhookHandler struct {
	Logger     *slog.Logger
	Reconciler *payments.Reconciler
}

func NewWebhookHandler(logger *slog.Logger, r *payments.Reconciler) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Reconciler: r}
}

// POST|GET /api/mp/webhook
// Always answers 200 {"ok":true}: a non-2xx here only tells the gateway to
// redeliver, which is the right move solely for transport failures — and
// those never reach this handler. Everything else is the reconciler's
// problem and is logged, not signaled.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = nil // treat an unreadable body like an empty one
	}

	n := payments.ParseNotification(c.Request.URL.Query(), body)
	h.Reconciler.Handle(c.Request.Context(), n)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
