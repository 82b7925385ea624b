// Package cartcookie is the serialize/deserialize boundary for the cart
// state container: the whole cart rides in an HMAC-signed cookie, so there
// is no server-side cart state to reconcile.
package cartcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/cart"
)

var ErrInvalid = errors.New("invalid cart cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64url(json(cart)).base64url(hmac(payload))
func (c *Codec) Encode(ct cart.Cart) (string, error) {
	b, err := json.Marshal(ct)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (cart.Cart, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 || parts[0] == "" {
		return cart.Cart{}, ErrInvalid
	}
	if !verify(c.Secret, parts[0], parts[1]) {
		return cart.Cart{}, ErrInvalid
	}
	b, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return cart.Cart{}, ErrInvalid
	}
	var ct cart.Cart
	if err := json.Unmarshal(b, &ct); err != nil {
		return cart.Cart{}, ErrInvalid
	}
	return ct, nil
}

// Get reads the cart from the request; a missing or tampered cookie yields
// an empty cart and clears the cookie.
func (c *Codec) Get(ctx *gin.Context) cart.Cart {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return cart.Cart{}
	}
	ct, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return cart.Cart{}
	}
	return ct
}

func (c *Codec) Set(ctx *gin.Context, ct cart.Cart) error {
	val, err := c.Encode(ct)
	if err != nil {
		return err
	}
	maxAge := int((30 * 24 * time.Hour).Seconds())
	ctx.SetSameSite(2) // Lax
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(2) // Lax
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
