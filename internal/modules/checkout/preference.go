package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/payments"
	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

var httpURLRe = regexp.MustCompile(`(?i)^https?://`)

// PreferenceBuilder turns a settlement snapshot into a gateway checkout
// request. The external reference is always the order record id, never the
// human order number: it is the join key the reconciler matches on.
type PreferenceBuilder struct {
	gateway payments.Gateway
	siteURL string
	sandbox bool
	logger  *slog.Logger
}

func NewPreferenceBuilder(gateway payments.Gateway, siteURL string, sandbox bool) *PreferenceBuilder {
	return &PreferenceBuilder{
		gateway: gateway,
		siteURL: strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		sandbox: sandbox,
		logger:  slog.Default(),
	}
}

func (b *PreferenceBuilder) SetLogger(logger *slog.Logger) { b.logger = logger }

type SettlementItem struct {
	Title     string
	Qty       int
	UnitPrice int
}

type BuildInput struct {
	OrderID     string
	OrderNumber string // optional; informational only
	Items       []SettlementItem
}

type BuildResult struct {
	PreferenceID     string
	RedirectURL      string // preferred target for this deployment
	InitPoint        string
	SandboxInitPoint string
}

func (b *PreferenceBuilder) Build(ctx context.Context, in BuildInput) (BuildResult, error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return BuildResult{}, apperr.InvalidErr("Missing order id.", nil)
	}
	if !httpURLRe.MatchString(b.siteURL) {
		return BuildResult{}, apperr.ConfigErr("SITE_URL must start with http:// or https://.")
	}

	items := make([]payments.PreferenceItem, 0, len(in.Items))
	for _, it := range in.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" || it.Qty <= 0 || it.UnitPrice <= 0 {
			continue // silently excluded
		}
		items = append(items, payments.PreferenceItem{Title: title, Qty: it.Qty, UnitPrice: it.UnitPrice})
	}
	if len(items) == 0 {
		return BuildResult{}, ErrNoValidItems
	}

	ref := strings.TrimSpace(in.OrderID)

	metadata := map[string]string{"orderId": ref}
	if n := strings.TrimSpace(in.OrderNumber); n != "" {
		metadata["orderNumber"] = n
	}

	pref, err := b.gateway.CreatePreference(ctx, payments.PreferenceRequest{
		ExternalReference: ref,
		Items:             items,
		BackURLs: payments.BackURLs{
			Success: b.backURL("success", ref),
			Failure: b.backURL("failure", ref),
			Pending: b.backURL("pending", ref),
		},
		NotificationURL: b.siteURL + "/api/mp/webhook",
		Metadata:        metadata,
	})
	if err != nil {
		return BuildResult{}, err
	}

	b.logger.InfoContext(ctx, "preference created",
		"order_id", ref, "preference_id", pref.ID, "items", len(items))

	return BuildResult{
		PreferenceID:     pref.ID,
		RedirectURL:      pref.RedirectURL(b.sandbox),
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
	}, nil
}

// backURL encodes the order id so the returning browser can enter the
// polling state without any server round trip.
func (b *PreferenceBuilder) backURL(status, orderID string) string {
	return fmt.Sprintf("%s/checkout?status=%s&orderId=%s", b.siteURL, status, url.QueryEscape(orderID))
}
