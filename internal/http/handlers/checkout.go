package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/middleware"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/validation"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/checkout"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

type CheckoutHandler struct {
	Logger *slog.Logger
	Prefs  *checkout.PreferenceBuilder
}

func NewCheckoutHandler(logger *slog.Logger, prefs *checkout.PreferenceBuilder) *CheckoutHandler {
	return &CheckoutHandler{Logger: logger, Prefs: prefs}
}

type preferenceItem struct {
	Title     string `json:"title"`
	Qty       int    `json:"qty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Price     int    `json:"price"`
}

type createPreferenceInput struct {
	OrderID     string           `json:"orderId" binding:"required"`
	OrderNumber string           `json:"orderNumber"`
	Items       []preferenceItem `json:"items"`
}

// POST /api/mp/create-preference
func (h *CheckoutHandler) CreatePreference(c *gin.Context) {
	var in createPreferenceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Preference could not be created.", fields))
		return
	}

	items := make([]checkout.SettlementItem, 0, len(in.Items))
	for _, it := range in.Items {
		qty := it.Qty
		if qty == 0 {
			qty = it.Quantity
		}
		unit := it.UnitPrice
		if unit == 0 {
			unit = it.Price
		}
		items = append(items, checkout.SettlementItem{Title: it.Title, Qty: qty, UnitPrice: unit})
	}

	res, err := h.Prefs.Build(c.Request.Context(), checkout.BuildInput{
		OrderID:     in.OrderID,
		OrderNumber: in.OrderNumber,
		Items:       items,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrNoValidItems) {
			middleware.Fail(c, apperr.InvalidErr("No valid items to create the preference.", nil))
			return
		}
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 res.PreferenceID,
		"init_point":         res.InitPoint,
		"sandbox_init_point": res.SandboxInitPoint,
		"redirect_url":       res.RedirectURL,
	})
}
