package main

import (
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/config"
	apphttp "github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/http/cartcookie"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/checkout"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/payments"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/strapi"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.StrapiToken == "" {
		log.Println("warning: STRAPI_TOKEN not set; record store calls will fail")
	}
	if cfg.MPAccessToken == "" {
		log.Println("warning: MP_ACCESS_TOKEN not set; gateway calls will fail")
	}

	store := strapi.New(cfg.StrapiURL, cfg.StrapiToken)
	store.SetLogger(logger)

	gateway := payments.NewMercadoPago(cfg.MPBaseURL, cfg.MPAccessToken)
	gateway.SetLogger(logger)

	orderSvc := orders.NewService(store)
	orderSvc.SetLogger(logger)

	prefs := checkout.NewPreferenceBuilder(gateway, cfg.SiteURL, cfg.MPSandbox)
	prefs.SetLogger(logger)

	reconciler := payments.NewReconciler(gateway, store)
	reconciler.SetLogger(logger)

	cartCodec := cartcookie.New([]byte(cfg.CartCookieSecret), "amg_cart", cfg.SiteURLIsHTTPS())

	r := apphttp.NewRouter(logger, apphttp.Deps{
		Orders:     orderSvc,
		Store:      store,
		Prefs:      prefs,
		Reconciler: reconciler,
		CartCodec:  cartCodec,
	})

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
