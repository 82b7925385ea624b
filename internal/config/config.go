package config

import (
	"os"
	"strings"
)

// Config carries everything the service reads from the environment.
// Credentials are checked where they are used, not here, so a partially
// configured instance can still serve the paths that don't need them.
type Config struct {
	Addr string

	// Public base URL of this deployment; back URLs and the notification
	// URL are derived from it.
	SiteURL string

	StrapiURL   string
	StrapiToken string

	MPAccessToken string
	MPBaseURL     string
	MPSandbox     bool

	CartCookieSecret string
}

func Load() Config {
	cfg := Config{
		Addr:             getenv("ADDR", ":8080"),
		SiteURL:          normalizeBaseURL(getenv("SITE_URL", "http://localhost:8080")),
		StrapiURL:        normalizeBaseURL(getenv("STRAPI_URL", "http://localhost:1337")),
		StrapiToken:      os.Getenv("STRAPI_TOKEN"),
		MPAccessToken:    os.Getenv("MP_ACCESS_TOKEN"),
		MPBaseURL:        normalizeBaseURL(getenv("MP_BASE_URL", "https://api.mercadopago.com")),
		MPSandbox:        os.Getenv("MP_SANDBOX") == "1" || strings.EqualFold(os.Getenv("MP_SANDBOX"), "true"),
		CartCookieSecret: getenv("CART_COOKIE_SECRET", "dev-cart-secret"),
	}
	return cfg
}

// SiteURLIsHTTPS decides whether cookies are marked Secure.
func (c Config) SiteURLIsHTTPS() bool {
	return strings.HasPrefix(c.SiteURL, "https://")
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func normalizeBaseURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
