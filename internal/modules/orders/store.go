package orders

import (
	"context"
	"errors"
)

// ErrNotFound distinguishes "no such order" from a transport failure.
var ErrNotFound = errors.New("order not found")

type CreateRecord struct {
	Name   string
	Email  string
	Items  []LineItem
	Total  int
	Status Status
}

// Patch is a partial update; nil fields are left untouched. Applying the
// same patch twice leaves the record unchanged.
type Patch struct {
	Status      *Status
	OrderNumber *string
	MPPaymentID *string
	MPStatus    *string
}

// Store is the external record store the order lives in. The id is assigned
// by the store on create and is authoritative.
type Store interface {
	CreateOrder(ctx context.Context, rec CreateRecord) (string, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdateOrder(ctx context.Context, id string, patch Patch) error
}
