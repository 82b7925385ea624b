package orders

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is applied from s.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

type LineItem struct {
	ProductID string `json:"productId,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Title     string `json:"title"`
	Qty       int    `json:"qty"`
	UnitPrice int    `json:"unit_price"` // price at time of order, discount applied
	Price     int    `json:"price,omitempty"`
	Off       int    `json:"off,omitempty"` // discount percent, for traceability
}

type Order struct {
	ID          string     `json:"id"`
	OrderNumber string     `json:"orderNumber,omitempty"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Items       []LineItem `json:"items"`
	Total       int        `json:"total"`
	Status      Status     `json:"orderStatus"`
	MPPaymentID string     `json:"mpPaymentId,omitempty"`
	MPStatus    string     `json:"mpStatus,omitempty"`
}

const numberPrefix = "AMG-"

// NumberFromRef derives the human order number from the record id.
// Same id always yields the same number; non-numeric ids yield nothing.
func NumberFromRef(ref string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil || n <= 0 {
		return "", false
	}
	return fmt.Sprintf("%s%04d", numberPrefix, n), true
}

// PriceWithOff applies a percent discount and rounds to the nearest unit.
func PriceWithOff(price, off int) int {
	if off <= 0 {
		return price
	}
	return int(math.Round(float64(price) * (1 - float64(off)/100)))
}
