package payments

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

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apimsg"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

const currencyID = "ARS"

// MercadoPago implements Gateway over the Checkout Pro REST API.
type MercadoPago struct {
	baseURL     string
	accessToken string
	http        *http.Client
	logger      *slog.Logger
}

func NewMercadoPago(baseURL, accessToken string) *MercadoPago {
	return &MercadoPago{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
		logger:      slog.Default(),
	}
}

func (m *MercadoPago) SetLogger(logger *slog.Logger) { m.logger = logger }

// SetHTTPClient overrides the transport, mainly for tests.
func (m *MercadoPago) SetHTTPClient(h *http.Client) { m.http = h }

type mpItem struct {
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int    `json:"unit_price"`
	CurrencyID string `json:"currency_id"`
}

type mpPreferenceBody struct {
	Items             []mpItem          `json:"items"`
	ExternalReference string            `json:"external_reference"`
	BackURLs          mpBackURLs        `json:"back_urls"`
	AutoReturn        string            `json:"auto_return"`
	NotificationURL   string            `json:"notification_url"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

type mpBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

func (m *MercadoPago) CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error) {
	if m.accessToken == "" {
		return Preference{}, apperr.ConfigErr("MP_ACCESS_TOKEN is not configured.")
	}

	body := mpPreferenceBody{
		Items:             make([]mpItem, 0, len(req.Items)),
		ExternalReference: req.ExternalReference,
		BackURLs: mpBackURLs{
			Success: req.BackURLs.Success,
			Failure: req.BackURLs.Failure,
			Pending: req.BackURLs.Pending,
		},
		AutoReturn:      "approved",
		NotificationURL: req.NotificationURL,
		Metadata:        req.Metadata,
	}
	for _, it := range req.Items {
		body.Items = append(body.Items, mpItem{
			Title:      it.Title,
			Quantity:   it.Qty,
			UnitPrice:  it.UnitPrice,
			CurrencyID: currencyID,
		})
	}

	raw, status, err := m.do(ctx, http.MethodPost, "/checkout/preferences", body)
	if err != nil {
		return Preference{}, apperr.UpstreamErr("MercadoPago is unreachable.", err)
	}
	if status < 200 || status >= 300 {
		msg := apimsg.Pick(raw, "MercadoPago rejected the preference.")
		m.logger.ErrorContext(ctx, "mp preference rejected",
			"status", status, "external_reference", req.ExternalReference, "body", truncate(string(raw), 512))
		return Preference{}, apperr.GatewayRejectedErr(msg, fmt.Errorf("mercadopago: preference: status %d", status))
	}

	var out struct {
		ID               string `json:"id"`
		InitPoint        string `json:"init_point"`
		SandboxInitPoint string `json:"sandbox_init_point"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Preference{}, apperr.UpstreamErr("MercadoPago returned an invalid response.", err)
	}
	return Preference{ID: out.ID, InitPoint: out.InitPoint, SandboxInitPoint: out.SandboxInitPoint}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, paymentID string) (Outcome, error) {
	if m.accessToken == "" {
		return Outcome{}, apperr.ConfigErr("MP_ACCESS_TOKEN is not configured.")
	}

	path := "/v1/payments/" + url.PathEscape(paymentID)
	raw, status, err := m.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Outcome{}, err
	}
	if status < 200 || status >= 300 {
		return Outcome{}, fmt.Errorf("mercadopago: payment %s: status %d: %s",
			paymentID, status, apimsg.Pick(raw, "lookup failed"))
	}

	var out struct {
		ID                json.Number `json:"id"`
		Status            string      `json:"status"`
		StatusDetail      string      `json:"status_detail"`
		ExternalReference string      `json:"external_reference"`
		Metadata          struct {
			OrderID string `json:"orderId"`
		} `json:"metadata"`
		Order struct {
			ID json.Number `json:"id"`
		} `json:"order"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Outcome{}, fmt.Errorf("mercadopago: payment %s: decode: %w", paymentID, err)
	}

	ref := out.ExternalReference
	if ref == "" {
		ref = out.Metadata.OrderID
	}

	id := out.ID.String()
	if id == "" {
		id = paymentID
	}

	return Outcome{
		PaymentID:         id,
		Status:            out.Status,
		StatusDetail:      out.StatusDetail,
		ExternalReference: ref,
		MerchantOrderID:   out.Order.ID.String(),
	}, nil
}

func (m *MercadoPago) do(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, rd)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.accessToken)

	res, err := m.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	return raw, res.StatusCode, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
