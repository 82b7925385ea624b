package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"
)

// Poll states. The browser enters checking when the gateway redirect carries
// an order id; paid/failed/timeout are terminal for the poll loop only — the
// server-side record may still change after a timeout.
type PollState string

const (
	StateForm     PollState = "form"
	StateChecking PollState = "checking"
	StatePaid     PollState = "paid"
	StateFailed   PollState = "failed"
	StateTimeout  PollState = "timeout"
)

const (
	DefaultPollInterval = 2500 * time.Millisecond
	DefaultPollBudget   = 30 * time.Second
)

type PollResult struct {
	State   PollState
	OrderID string
	Reason  string // for failed: the specific terminal status observed
}

// OrderGetter is the single query the poller issues.
type OrderGetter interface {
	GetOrder(ctx context.Context, id string) (*orders.Order, error)
}

// Poller watches an order after the gateway redirect until it reaches a
// terminal status or the budget runs out. The push notification and this
// loop race; both converge on the same record, so no ordering is assumed.
type Poller struct {
	store    OrderGetter
	Interval time.Duration
	Budget   time.Duration
	Now      func() time.Time // injectable for tests
	logger   *slog.Logger
}

func NewPoller(store OrderGetter) *Poller {
	return &Poller{
		store:    store,
		Interval: DefaultPollInterval,
		Budget:   DefaultPollBudget,
		Now:      time.Now,
		logger:   slog.Default(),
	}
}

func (p *Poller) SetLogger(logger *slog.Logger) { p.logger = logger }

// Enter decides the initial state from the redirect context.
func Enter(orderID string) PollResult {
	if orderID == "" {
		return PollResult{State: StateForm}
	}
	return PollResult{State: StateChecking, OrderID: orderID}
}

// Tick performs one status query and decides the next transition. A query
// error is "no new information this tick", not a terminal condition; only
// the deadline ends the loop without an answer.
func (p *Poller) Tick(ctx context.Context, orderID string, deadline time.Time) (PollResult, bool) {
	o, err := p.store.GetOrder(ctx, orderID)
	if err != nil {
		p.logger.DebugContext(ctx, "poll query failed", "order_id", orderID, "err", err)
	} else {
		switch o.Status {
		case orders.StatusPaid:
			return PollResult{State: StatePaid, OrderID: orderID}, true
		case orders.StatusFailed, orders.StatusCancelled:
			return PollResult{State: StateFailed, OrderID: orderID, Reason: string(o.Status)}, true
		}
	}

	if !p.Now().Before(deadline) {
		return PollResult{State: StateTimeout, OrderID: orderID}, true
	}
	return PollResult{State: StateChecking, OrderID: orderID}, false
}

// Run polls until a terminal state, the budget, or ctx cancellation. On
// cancellation the ticker is released and no further transition occurs.
func (p *Poller) Run(ctx context.Context, orderID string) (PollResult, error) {
	entry := Enter(orderID)
	if entry.State != StateChecking {
		return entry, nil
	}

	deadline := p.Now().Add(p.Budget)

	// Immediate first query, then a fixed interval.
	if res, done := p.Tick(ctx, orderID, deadline); done {
		return res, nil
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return PollResult{State: StateChecking, OrderID: orderID}, ctx.Err()
		case <-ticker.C:
			if res, done := p.Tick(ctx, orderID, deadline); done {
				return res, nil
			}
		}
	}
}
