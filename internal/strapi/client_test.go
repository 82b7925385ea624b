package strapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

func TestCreateOrder(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":42,"attributes":{"orderStatus":"pending"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	id, err := c.CreateOrder(context.Background(), orders.CreateRecord{
		Name:   "Lucia",
		Email:  "lucia@example.com",
		Items:  []orders.LineItem{{Title: "Caja", Qty: 1, UnitPrice: 900}},
		Total:  900,
		Status: orders.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	assert.Equal(t, "/api/orders", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)

	data, ok := gotBody["data"].(map[string]any)
	require.True(t, ok, "strapi payloads are wrapped in data")
	assert.Equal(t, "pending", data["orderStatus"])
	assert.Equal(t, float64(900), data["total"])
}

func TestCreateOrderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"status":400,"message":"orderStatus is invalid"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.CreateOrder(context.Background(), orders.CreateRecord{Status: orders.StatusPending})
	require.Error(t, err)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Upstream, ae.Kind)
	assert.Equal(t, "orderStatus is invalid", ae.PublicMsg)
}

func TestGetOrderV4Shape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("filters[id][$eq]"))
		_, _ = w.Write([]byte(`{"data":[{"id":42,"attributes":{
			"name":"Lucia","email":"lucia@example.com","total":900,
			"orderStatus":"paid","orderNumber":"AMG-0042",
			"mpPaymentId":"987","mpStatus":"approved"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	o, err := c.GetOrder(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "42", o.ID)
	assert.Equal(t, orders.StatusPaid, o.Status)
	assert.Equal(t, "AMG-0042", o.OrderNumber)
	assert.Equal(t, "987", o.MPPaymentID)
	assert.Equal(t, "approved", o.MPStatus)
	assert.Equal(t, 900, o.Total)
}

func TestGetOrderV5FlatShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":7,"name":"Marcos","email":"m@example.com",
			"total":500,"orderStatus":"pending"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	o, err := c.GetOrder(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "7", o.ID)
	assert.Equal(t, orders.StatusPending, o.Status)
	assert.Equal(t, "Marcos", o.Name)
}

func TestGetOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.GetOrder(context.Background(), "404")
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestUpdateOrderSendsOnlyPatchedFields(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"data":{"id":42}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")

	paid := orders.StatusPaid
	pid := "987"
	raw := "approved"
	num := "AMG-0042"
	err := c.UpdateOrder(context.Background(), "42", orders.Patch{
		Status:      &paid,
		MPPaymentID: &pid,
		MPStatus:    &raw,
		OrderNumber: &num,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/orders/42", gotPath)

	data := gotBody["data"].(map[string]any)
	assert.Equal(t, map[string]any{
		"orderStatus": "paid",
		"mpPaymentId": "987",
		"mpStatus":    "approved",
		"orderNumber": "AMG-0042",
	}, data)
}

func TestUpdateOrderOmitsNilFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"data":{"id":42}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	paid := orders.StatusPaid
	require.NoError(t, c.UpdateOrder(context.Background(), "42", orders.Patch{Status: &paid}))

	data := gotBody["data"].(map[string]any)
	assert.Equal(t, map[string]any{"orderStatus": "paid"}, data)
}

func TestUpdateOrderEmptyPatchIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	require.NoError(t, c.UpdateOrder(context.Background(), "42", orders.Patch{}))
	assert.False(t, called)
}

func TestMissingTokenIsConfigError(t *testing.T) {
	c := New("http://localhost:1", "")

	_, err := c.CreateOrder(context.Background(), orders.CreateRecord{})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Config, ae.Kind)
}
