// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// LineItem is one cart entry, keyed by SKU and size
type LineItem struct {
	ItemID    string `json:"item_id"` // sku + "_" + size
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_price"` // Price in cents at time of adding
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // Quantity * UnitPrice
}

// Cart is the session-scoped shopping cart. It is a value object: every
// mutation returns a new Cart with TotalQty and TotalPrice recomputed from
// scratch over the items, never adjusted incrementally.
type Cart struct {
	SessionID  string     `json:"session_id"`
	Items      []LineItem `json:"items"`
	TotalQty   int        `json:"total_qty"`
	TotalPrice int64      `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// MakeItemID builds the composite line-item key
func MakeItemID(sku, size string) string {
	return sku + "_" + size
}

// IsEmpty reports whether the cart has no items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the line item with the given ID, if present
func (c Cart) Find(itemID string) (LineItem, bool) {
	for _, item := range c.Items {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return LineItem{}, false
}

// Add merges qty of the given item into the cart. An existing line item with
// the same ItemID has its quantity incremented; otherwise the item is
// appended at the end.
func (c Cart) Add(item LineItem, qty int) Cart {
	if qty < 1 {
		qty = 1
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	merged := false
	for i := range items {
		if items[i].ItemID == item.ItemID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = qty
		items = append(items, item)
	}

	c.Items = items
	return c.recalc()
}

// Remove filters out the line item with the given ID. No-op if absent.
func (c Cart) Remove(itemID string) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ItemID != itemID {
			items = append(items, item)
		}
	}
	c.Items = items
	return c.recalc()
}

// AdjustQuantity applies a signed delta to the line item's quantity. A
// resulting quantity of zero or below removes the item entirely.
func (c Cart) AdjustQuantity(itemID string, delta int) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ItemID == itemID {
			item.Quantity += delta
			if item.Quantity <= 0 {
				continue
			}
		}
		items = append(items, item)
	}
	c.Items = items
	return c.recalc()
}

// Cleared returns the cart with all items removed
func (c Cart) Cleared() Cart {
	c.Items = []LineItem{}
	return c.recalc()
}

// recalc recomputes per-item prices and cart totals as full reductions over
// all items. Recomputing from scratch guards against drift between the
// stored totals and the line items.
func (c Cart) recalc() Cart {
	var totalQty int
	var totalPrice int64

	for i := range c.Items {
		c.Items[i].Price = int64(c.Items[i].Quantity) * c.Items[i].UnitPrice
		totalQty += c.Items[i].Quantity
		totalPrice += c.Items[i].Price
	}

	c.TotalQty = totalQty
	c.TotalPrice = totalPrice
	c.UpdatedAt = time.Now().UTC()
	return c
}
