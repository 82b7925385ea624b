// Package strapi implements the order record store over the Strapi REST API.
// The store is the single system of record for orders; this client only does
// create, fetch-by-id and partial update.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apimsg"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
}

func (c *Client) SetLogger(logger *slog.Logger) { c.logger = logger }

// SetHTTPClient overrides the transport, mainly for tests.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// Strapi wraps every write payload in {"data": ...} and answers with either
// v4 rows ({id, attributes:{...}}) or v5 flat rows.
type orderAttrs struct {
	Name        string            `json:"name,omitempty"`
	Email       string            `json:"email,omitempty"`
	Items       []orders.LineItem `json:"items,omitempty"`
	Total       int               `json:"total"`
	OrderStatus orders.Status     `json:"orderStatus,omitempty"`
	OrderNumber string            `json:"orderNumber,omitempty"`
	MPPaymentID string            `json:"mpPaymentId,omitempty"`
	MPStatus    string            `json:"mpStatus,omitempty"`
}

type row struct {
	ID         json.Number `json:"id"`
	Attributes *orderAttrs `json:"attributes"`
	orderAttrs
}

func (r row) attrs() orderAttrs {
	if r.Attributes != nil {
		return *r.Attributes
	}
	return r.orderAttrs
}

func (c *Client) CreateOrder(ctx context.Context, rec orders.CreateRecord) (string, error) {
	if c.token == "" {
		return "", apperr.ConfigErr("Record store token is not configured.")
	}

	payload := map[string]any{"data": orderAttrs{
		Name:        rec.Name,
		Email:       rec.Email,
		Items:       rec.Items,
		Total:       rec.Total,
		OrderStatus: rec.Status,
	}}

	var out struct {
		Data row `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", payload, &out, "Record store rejected the order."); err != nil {
		return "", err
	}

	id := out.Data.ID.String()
	if id == "" {
		return "", apperr.UpstreamErr("Record store returned no order id.", fmt.Errorf("strapi: create response missing id"))
	}
	return id, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	if c.token == "" {
		return nil, apperr.ConfigErr("Record store token is not configured.")
	}

	// Filter lookup instead of /api/orders/:id; compatible with both v4 and v5.
	path := "/api/orders?filters[id][$eq]=" + url.QueryEscape(id)

	var out struct {
		Data []row `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "Record store lookup failed."); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, orders.ErrNotFound
	}

	r := out.Data[0]
	a := r.attrs()
	return &orders.Order{
		ID:          r.ID.String(),
		OrderNumber: a.OrderNumber,
		Name:        a.Name,
		Email:       a.Email,
		Items:       a.Items,
		Total:       a.Total,
		Status:      a.OrderStatus,
		MPPaymentID: a.MPPaymentID,
		MPStatus:    a.MPStatus,
	}, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, patch orders.Patch) error {
	if c.token == "" {
		return apperr.ConfigErr("Record store token is not configured.")
	}

	data := map[string]any{}
	if patch.Status != nil {
		data["orderStatus"] = *patch.Status
	}
	if patch.OrderNumber != nil {
		data["orderNumber"] = *patch.OrderNumber
	}
	if patch.MPPaymentID != nil {
		data["mpPaymentId"] = *patch.MPPaymentID
	}
	if patch.MPStatus != nil {
		data["mpStatus"] = *patch.MPStatus
	}
	if len(data) == 0 {
		return nil
	}

	path := "/api/orders/" + url.PathEscape(id)
	return c.do(ctx, http.MethodPut, path, map[string]any{"data": data}, nil, "Record store update failed.")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, failMsg string) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.Wrap(err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return apperr.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return apperr.UpstreamErr("Record store is unreachable.", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := apimsg.Pick(raw, failMsg)
		c.logger.ErrorContext(ctx, "strapi request failed",
			"method", method, "path", path, "status", res.StatusCode, "body", truncate(string(raw), 512))
		return apperr.UpstreamErr(msg, fmt.Errorf("strapi: %s %s: status %d", method, path, res.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperr.UpstreamErr(failMsg, fmt.Errorf("strapi: decode response: %w", err))
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
