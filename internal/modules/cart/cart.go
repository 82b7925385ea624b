// Package cart is an explicitly scoped cart state container with a typed
// action surface. Persistence is a separate serialize/deserialize boundary
// (the signed cookie codec in internal/http/cartcookie), never ambient
// global state.
package cart

import "github.com/LucasTabacchi/Ecommerce-Amargo-y-Dulce/internal/modules/orders"

type Item struct {
	ID    string `json:"id"` // product reference
	Slug  string `json:"slug,omitempty"`
	Title string `json:"title"`
	Price int    `json:"price"`
	Off   int    `json:"off,omitempty"` // discount percent
	Qty   int    `json:"qty"`
	Image string `json:"image,omitempty"`
}

type Cart struct {
	Items []Item `json:"items"`
}

func (c *Cart) Add(it Item, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == it.ID {
			c.Items[i].Qty += qty
			return
		}
	}
	it.Qty = qty
	c.Items = append(c.Items, it)
}

func (c *Cart) Increment(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Qty++
			return
		}
	}
}

// Decrement removes the item when its quantity reaches zero.
func (c *Cart) Decrement(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Qty--
			if c.Items[i].Qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			}
			return
		}
	}
}

func (c *Cart) Remove(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal sums discounted unit prices.
func (c Cart) Subtotal() int {
	total := 0
	for _, it := range c.Items {
		total += orders.PriceWithOff(it.Price, it.Off) * it.Qty
	}
	return total
}

// Boxes is the total quantity across items; the box promo keys off it.
func (c Cart) Boxes() int {
	n := 0
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

const (
	promoAmountThreshold = 50000
	promoBoxThreshold    = 3
)

// Quote is the checkout summary shown before payment.
type Quote struct {
	Subtotal int `json:"subtotal"`
	Discount int `json:"discount"`
	Total    int `json:"total"`
	Boxes    int `json:"boxes"`
}

// Quote applies the storefront promos: 10% off subtotals of 50000 and up,
// 5% off at 3 boxes or more; the larger discount wins, they do not stack.
func (c Cart) Quote() Quote {
	subtotal := c.Subtotal()
	boxes := c.Boxes()

	rate := 0.0
	if subtotal >= promoAmountThreshold {
		rate = 0.10
	} else if boxes >= promoBoxThreshold {
		rate = 0.05
	}

	discount := int(float64(subtotal)*rate + 0.5)
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
		Boxes:    boxes,
	}
}
