package domain

import (
	"strings"
	"time"
)

// Cart is the single per-user cart document. It is keyed by the owner's
// email (unique index in the carts collection) and written wholesale:
// load, mutate, replace. Version is the compare-and-swap token bumped
// on every write.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	Email     string     `bson:"email" json:"email"`
	Items     []CartItem `bson:"items" json:"cartItems"`
	Version   int64      `bson:"version" json:"-"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// CartItem holds a full product snapshot captured at add time plus a
// quantity. The price is never refreshed from the catalog afterwards.
type CartItem struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// ItemIndex returns the position of the line referencing productID, or
// -1 when no line does. Ids are compared as normalized strings.
func (c *Cart) ItemIndex(productID string) int {
	id := NormalizeProductID(productID)
	for i := range c.Items {
		if NormalizeProductID(c.Items[i].Product.ID) == id {
			return i
		}
	}
	return -1
}

// Total is the checkout amount: sum of unit cost times quantity over
// all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Cost * float64(item.Quantity)
	}
	return total
}

func NormalizeProductID(id string) string {
	return strings.TrimSpace(id)
}
