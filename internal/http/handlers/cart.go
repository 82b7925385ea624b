package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/cartcookie"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/middleware"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/validation"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/cart"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

type CartHandler struct {
	Logger *slog.Logger
	Codec  *cartcookie.Codec
}

func NewCartHandler(logger *slog.Logger, codec *cartcookie.Codec) *CartHandler {
	return &CartHandler{Logger: logger, Codec: codec}
}

func (h *CartHandler) respond(c *gin.Context, ct cart.Cart) {
	c.JSON(http.StatusOK, gin.H{"items": ct.Items, "quote": ct.Quote()})
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	h.respond(c, h.Codec.Get(c))
}

type addItemInput struct {
	ID    string `json:"id" binding:"required"`
	Slug  string `json:"slug"`
	Title string `json:"title" binding:"required"`
	Price int    `json:"price" binding:"required,min=1"`
	Off   int    `json:"off" binding:"min=0,max=100"`
	Image string `json:"image"`
	Qty   int    `json:"qty" binding:"min=0"`
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var in addItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fields := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Item could not be added.", fields))
		return
	}

	ct := h.Codec.Get(c)
	ct.Add(cart.Item{
		ID:    in.ID,
		Slug:  in.Slug,
		Title: in.Title,
		Price: in.Price,
		Off:   in.Off,
		Image: in.Image,
	}, in.Qty)

	if err := h.Codec.Set(c, ct); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respond(c, ct)
}

// POST /api/cart/items/:id/increment
func (h *CartHandler) Increment(c *gin.Context) {
	ct := h.Codec.Get(c)
	ct.Increment(c.Param("id"))
	if err := h.Codec.Set(c, ct); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respond(c, ct)
}

// POST /api/cart/items/:id/decrement
func (h *CartHandler) Decrement(c *gin.Context) {
	ct := h.Codec.Get(c)
	ct.Decrement(c.Param("id"))
	if err := h.Codec.Set(c, ct); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respond(c, ct)
}

// DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ct := h.Codec.Get(c)
	ct.Remove(c.Param("id"))
	if err := h.Codec.Set(c, ct); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respond(c, ct)
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.Codec.Clear(c)
	h.respond(c, cart.Cart{})
}
