// Package invoice maintains the invoice cart of selected procedures and derives its totals.
package invoice

import (
	"github.com/mmynk/dentaldesk/internal/models"
)

// Cart is the reducer over an invoice's line items. The zero value is an empty cart.
// A Cart is owned by a single session and is not safe for concurrent use.
type Cart struct {
	items []models.LineItem
}

// NewCart builds a cart from stored line items. Items with a quantity below one are
// dropped so the quantity invariant holds from the start.
func NewCart(items []models.LineItem) *Cart {
	c := &Cart{items: make([]models.LineItem, 0, len(items))}
	for _, li := range items {
		if li.Quantity < 1 {
			continue
		}
		c.items = append(c.items, li)
	}
	return c
}

// Add puts one unit of p on the invoice: a new line item with quantity 1, or one more unit
// on the existing line item for p.ID.
func (c *Cart) Add(p models.Procedure) {
	if i := c.index(p.ID); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, models.LineItem{Procedure: p, Quantity: 1})
}

// ChangeQuantity adds delta to the quantity of procedure id, flooring at zero. A line item
// that reaches zero is removed. Unknown ids are ignored.
func (c *Cart) ChangeQuantity(id int64, delta int) {
	i := c.index(id)
	if i < 0 {
		return
	}
	q := c.items[i].Quantity + delta
	if q <= 0 {
		c.removeAt(i)
		return
	}
	c.items[i].Quantity = q
}

// Remove deletes the line item for procedure id. Unknown ids are ignored.
func (c *Cart) Remove(id int64) {
	if i := c.index(id); i >= 0 {
		c.removeAt(i)
	}
}

// Contains reports whether procedure id is on the invoice.
func (c *Cart) Contains(id int64) bool {
	return c.index(id) >= 0
}

// Len is the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []models.LineItem {
	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals derives the invoice totals from the current line items.
func (c *Cart) Totals(rate CoverageRate) Totals {
	return ComputeTotals(c.items, rate)
}

func (c *Cart) index(id int64) int {
	for i, li := range c.items {
		if li.Procedure.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}
