package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/payments"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

type fakeGateway struct {
	req  payments.PreferenceRequest
	pref payments.Preference
	err  error
}

func (f *fakeGateway) CreatePreference(_ context.Context, req payments.PreferenceRequest) (payments.Preference, error) {
	f.req = req
	if f.err != nil {
		return payments.Preference{}, f.err
	}
	return f.pref, nil
}

func (f *fakeGateway) GetPayment(context.Context, string) (payments.Outcome, error) {
	return payments.Outcome{}, nil
}

func testPref() payments.Preference {
	return payments.Preference{
		ID:               "pref-1",
		InitPoint:        "https://mp.example/init",
		SandboxInitPoint: "https://mp.example/sandbox",
	}
}

func TestBuildFiltersInvalidItems(t *testing.T) {
	gw := &fakeGateway{pref: testPref()}
	b := NewPreferenceBuilder(gw, "https://shop.example", false)

	_, err := b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items: []SettlementItem{
			{Title: "A", Qty: 1, UnitPrice: 100},
			{Title: "B", Qty: 0, UnitPrice: 50},
			{Title: "C", Qty: 1, UnitPrice: 0},
			{Title: "   ", Qty: 1, UnitPrice: 10},
		},
	})
	require.NoError(t, err)

	require.Len(t, gw.req.Items, 1)
	assert.Equal(t, "A", gw.req.Items[0].Title)
}

func TestBuildNoValidItems(t *testing.T) {
	gw := &fakeGateway{pref: testPref()}
	b := NewPreferenceBuilder(gw, "https://shop.example", false)

	_, err := b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items: []SettlementItem{
			{Title: "B", Qty: 0, UnitPrice: 50},
			{Title: "C", Qty: 1, UnitPrice: 0},
		},
	})
	assert.ErrorIs(t, err, ErrNoValidItems)
}

func TestBuildExternalReferenceIsOrderID(t *testing.T) {
	gw := &fakeGateway{pref: testPref()}
	b := NewPreferenceBuilder(gw, "https://shop.example", false)

	_, err := b.Build(context.Background(), BuildInput{
		OrderID:     "42",
		OrderNumber: "AMG-0042",
		Items:       []SettlementItem{{Title: "A", Qty: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	// The join key is the record id; the order number is metadata only.
	assert.Equal(t, "42", gw.req.ExternalReference)
	assert.Equal(t, "42", gw.req.Metadata["orderId"])
	assert.Equal(t, "AMG-0042", gw.req.Metadata["orderNumber"])
}

func TestBuildCallbackURLs(t *testing.T) {
	gw := &fakeGateway{pref: testPref()}
	b := NewPreferenceBuilder(gw, "https://shop.example/", false) // trailing slash normalized

	_, err := b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items:   []SettlementItem{{Title: "A", Qty: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example/checkout?status=success&orderId=42", gw.req.BackURLs.Success)
	assert.Equal(t, "https://shop.example/checkout?status=failure&orderId=42", gw.req.BackURLs.Failure)
	assert.Equal(t, "https://shop.example/checkout?status=pending&orderId=42", gw.req.BackURLs.Pending)
	assert.Equal(t, "https://shop.example/api/mp/webhook", gw.req.NotificationURL)
}

func TestBuildBadSiteURL(t *testing.T) {
	gw := &fakeGateway{pref: testPref()}
	b := NewPreferenceBuilder(gw, "shop.example", false)

	_, err := b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items:   []SettlementItem{{Title: "A", Qty: 1, UnitPrice: 100}},
	})
	require.Error(t, err)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Config, ae.Kind)
}

func TestBuildRedirectPrefersSandbox(t *testing.T) {
	gw := &fakeGateway{pref: testPref()}

	b := NewPreferenceBuilder(gw, "https://shop.example", true)
	res, err := b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items:   []SettlementItem{{Title: "A", Qty: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mp.example/sandbox", res.RedirectURL)

	b = NewPreferenceBuilder(gw, "https://shop.example", false)
	res, err = b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items:   []SettlementItem{{Title: "A", Qty: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mp.example/init", res.RedirectURL)
}

func TestBuildGatewayRejection(t *testing.T) {
	gw := &fakeGateway{err: apperr.GatewayRejectedErr("invalid access token", nil)}
	b := NewPreferenceBuilder(gw, "https://shop.example", false)

	_, err := b.Build(context.Background(), BuildInput{
		OrderID: "42",
		Items:   []SettlementItem{{Title: "A", Qty: 1, UnitPrice: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, "invalid access token", apperr.PublicMessage(err))
}
