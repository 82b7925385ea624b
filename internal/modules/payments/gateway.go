package payments

import "context"

type PreferenceItem struct {
	Title     string
	Qty       int
	UnitPrice int
}

type BackURLs struct {
	Success string
	Failure string
	Pending string
}

type PreferenceRequest struct {
	// ExternalReference is the order record id, as a string. It is echoed
	// back in the payment outcome and is the join key for reconciliation.
	ExternalReference string
	Items             []PreferenceItem
	BackURLs          BackURLs
	NotificationURL   string
	Metadata          map[string]string
}

type Preference struct {
	ID               string
	InitPoint        string
	SandboxInitPoint string
}

// RedirectURL picks the checkout target; sandbox is preferred outside
// production when the gateway provides one.
func (p Preference) RedirectURL(sandbox bool) string {
	if sandbox && p.SandboxInitPoint != "" {
		return p.SandboxInitPoint
	}
	return p.InitPoint
}

// Outcome is the payment state fetched from the gateway. The notification
// itself is never trusted; only this is.
type Outcome struct {
	PaymentID         string
	Status            string // gateway vocabulary: approved, pending, rejected, cancelled, ...
	StatusDetail      string
	ExternalReference string
	MerchantOrderID   string
}

type Gateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error)
	GetPayment(ctx context.Context, paymentID string) (Outcome, error)
}
