package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/cartcookie"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/handlers"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/middleware"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/checkout"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/payments"
)

type Deps struct {
	Orders     *orders.Service
	Store      orders.Store
	Prefs      *checkout.PreferenceBuilder
	Reconciler *payments.Reconciler
	CartCodec  *cartcookie.Codec
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(logger))

	oh := handlers.NewOrdersHandler(logger, d.Orders, d.Store)
	ch := handlers.NewCheckoutHandler(logger, d.Prefs)
	wh := handlers.NewWebhookHandler(logger, d.Reconciler)
	cth := handlers.NewCartHandler(logger, d.CartCodec)

	api := r.Group("/api")
	{
		api.POST("/orders", oh.Create)
		api.GET("/orders/:id", oh.Get)

		api.POST("/mp/create-preference", ch.CreatePreference)
		// The gateway posts notifications but also probes with GET + query
		// params; both shapes go through the same intake.
		api.POST("/mp/webhook", wh.Handle)
		api.GET("/mp/webhook", wh.Handle)

		api.GET("/cart", cth.Get)
		api.POST("/cart/items", cth.AddItem)
		api.POST("/cart/items/:id/increment", cth.Increment)
		api.POST("/cart/items/:id/decrement", cth.Decrement)
		api.DELETE("/cart/items/:id", cth.RemoveItem)
		api.DELETE("/cart", cth.Clear)
	}

	return r
}
