package cartcookie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/cart"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	c := New([]byte("secret"), "amg_cart", false)

	var ct cart.Cart
	ct.Add(cart.Item{ID: "a", Title: "Caja surtida", Price: 1000, Off: 10}, 2)

	v, err := c.Encode(ct)
	require.NoError(t, err)

	got, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, ct, got)
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := New([]byte("secret"), "amg_cart", false)

	var ct cart.Cart
	ct.Add(cart.Item{ID: "a", Title: "Caja", Price: 1000}, 1)

	v, err := c.Encode(ct)
	require.NoError(t, err)

	parts := strings.SplitN(v, ".", 2)
	tampered := parts[0] + "x." + parts[1]
	_, err = c.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalid)

	// signature from another secret
	other := New([]byte("other"), "amg_cart", false)
	v2, err := other.Encode(ct)
	require.NoError(t, err)
	_, err = c.Decode(v2)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := New([]byte("secret"), "amg_cart", false)
	for _, v := range []string{"", "no-dot", ".sig", "a.b.c"} {
		_, err := c.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid, "value %q", v)
	}
}
