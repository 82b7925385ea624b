package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/middleware"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/validation"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

type OrdersHandler struct {
	Logger *slog.Logger
	Orders *orders.Service
	Store  orders.Store
}

func NewOrdersHandler(logger *slog.Logger, svc *orders.Service, store orders.Store) *OrdersHandler {
	return &OrdersHandler{Logger: logger, Orders: svc, Store: store}
}

type createOrderItem struct {
	ProductID string `json:"productId"`
	Slug      string `json:"slug"`
	Title     string `json:"title" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1"`
	Price     int    `json:"price" binding:"min=0"`
	UnitPrice int    `json:"unit_price"`
	Off       int    `json:"off" binding:"min=0,max=100"`
}

type createOrderInput struct {
	Name  string            `json:"name" binding:"required,min=2"`
	Email string            `json:"email" binding:"required,contains=@"`
	Total int               `json:"total"`
	Items []createOrderItem `json:"items" binding:"required,min=1,dive"`
}

// POST /api/orders
// Creates the pending record before the gateway redirect and returns the
// store-assigned id.
func (h *OrdersHandler) Create(c *gin.Context) {
	var in createOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Order could not be created.", fields))
		return
	}

	items := make([]orders.CreateItem, 0, len(in.Items))
	for _, it := range in.Items {
		price := it.Price
		if price == 0 && it.UnitPrice > 0 {
			// Some clients only send the settled unit price.
			price = it.UnitPrice
		}
		items = append(items, orders.CreateItem{
			ProductID: it.ProductID,
			Slug:      it.Slug,
			Title:     it.Title,
			Qty:       it.Qty,
			Price:     price,
			Off:       it.Off,
		})
	}

	id, err := h.Orders.Create(c.Request.Context(), orders.CreateInput{
		Name:  in.Name,
		Email: in.Email,
		Items: items,
		Total: in.Total,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "orderId": id})
}

// GET /api/orders/:id
// The poll endpoint: the browser queries it after returning from the
// gateway until the status turns terminal.
func (h *OrdersHandler) Get(c *gin.Context) {
	o, err := h.Store.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}
