package orders

import (
	"context"
	"log/slog"
	"strings"

	"github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/shared/apperr"
)

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store) *Service {
	return &Service{store: store, logger: slog.Default()}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

type CreateItem struct {
	ProductID string
	Slug      string
	Title     string
	Qty       int
	Price     int // list price
	Off       int // discount percent, optional
}

type CreateInput struct {
	Name  string
	Email string
	Items []CreateItem
	Total int // client-displayed total; recomputed server-side, never trusted
}

// Create validates the snapshot, creates the pending record and returns the
// store-assigned id. Not retried here; the caller may resubmit.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if len(in.Items) == 0 {
		fields["items"] = "Cart is empty."
	}
	if len(name) < 2 {
		fields["name"] = "Enter a valid name."
	}
	if !strings.Contains(email, "@") {
		fields["email"] = "Enter a valid email."
	}
	for _, it := range in.Items {
		if it.Qty < 1 || it.Price < 0 {
			fields["items"] = "Cart contains an invalid item."
			break
		}
	}
	if len(fields) > 0 {
		return "", apperr.InvalidErr("Order could not be created.", fields)
	}

	items := make([]LineItem, 0, len(in.Items))
	total := 0
	for _, it := range in.Items {
		unit := PriceWithOff(it.Price, it.Off)
		items = append(items, LineItem{
			ProductID: it.ProductID,
			Slug:      it.Slug,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitPrice: unit,
			Price:     it.Price,
			Off:       it.Off,
		})
		total += unit * it.Qty
	}

	id, err := s.store.CreateOrder(ctx, CreateRecord{
		Name:   name,
		Email:  email,
		Items:  items,
		Total:  total,
		Status: StatusPending,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "order create failed", "email", email, "err", err)
		if _, ok := apperr.As(err); ok {
			return "", err
		}
		return "", apperr.UpstreamErr("Order could not be created.", err)
	}

	s.logger.InfoContext(ctx, "order created", "order_id", id, "total", total)
	return id, nil
}
