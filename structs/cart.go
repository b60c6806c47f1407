package structs

import (
	"errors"
	"fmt"
)

var ErrExceedsStock = errors.New("quantity exceeds available stock")

// CartItem is one line of a session cart. Line identity is the
// product+size+colour combination, so the same product in two colours
// occupies two lines while repeat adds of the same combination merge.
type CartItem struct {
	Id          string `json:"id"` // <product_id>-<size>-<colour>
	ProductId   string `json:"product_id"`
	VariantId   string `json:"variant_id"`
	Name        string `json:"name"`
	Price       uint64 `json:"price"` // in cents, snapshot at add time
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	Colour      string `json:"colour"`
	ProductCode string `json:"product_code"`
	Material    string `json:"material,omitempty"`
	Category    string `json:"category,omitempty"`
	MaxStock    int    `json:"max_stock"` // variant stock at add time, merge clamp
}

// Cart is the whole session cart. It is stored and rewritten as a single
// JSON list per mutation; there is no per-line persistence.
type Cart []CartItem

// LineId builds the cart line identity for a product/variant combination.
func LineId(productId, size, colour string) string {
	return fmt.Sprintf("%s-%s-%s", productId, size, colour)
}

// Add merges the item into the cart. An existing line with the same id gains
// the item's quantity; the merged quantity may not exceed the line's MaxStock.
func (c Cart) Add(item CartItem) (Cart, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.MaxStock > 0 && item.Quantity > item.MaxStock {
		return c, ErrExceedsStock
	}
	for i := range c {
		if c[i].Id != item.Id {
			continue
		}
		merged := c[i].Quantity + item.Quantity
		if c[i].MaxStock > 0 && merged > c[i].MaxStock {
			return c, ErrExceedsStock
		}
		out := append(Cart(nil), c...)
		out[i].Quantity = merged
		return out, nil
	}
	return append(append(Cart(nil), c...), item), nil
}

// UpdateQuantity sets the quantity of the line with the given id. A quantity
// below one removes the line.
func (c Cart) UpdateQuantity(id string, quantity int) (Cart, error) {
	if quantity < 1 {
		return c.Remove(id), nil
	}
	for i := range c {
		if c[i].Id != id {
			continue
		}
		if c[i].MaxStock > 0 && quantity > c[i].MaxStock {
			return c, ErrExceedsStock
		}
		out := append(Cart(nil), c...)
		out[i].Quantity = quantity
		return out, nil
	}
	return c, nil
}

// Remove drops the line with the given id. Unknown ids are a no-op.
func (c Cart) Remove(id string) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.Id != id {
			out = append(out, item)
		}
	}
	return out
}

// Total returns the cart total in cents.
func (c Cart) Total() uint64 {
	var total uint64
	for _, item := range c {
		total += item.Price * uint64(item.Quantity)
	}
	return total
}

// WishlistItem is one entry of a session wishlist, identified by product id.
type WishlistItem struct {
	Id          string `json:"id"` // product id
	ProductId   string `json:"product_id"`
	Name        string `json:"name"`
	Price       uint64 `json:"price"` // product minimum price in cents
	Image       string `json:"image"`
	ProductCode string `json:"product_code"`
}

type Wishlist []WishlistItem

// Has reports whether the wishlist contains the given product id.
func (wl Wishlist) Has(id string) bool {
	for _, item := range wl {
		if item.Id == id {
			return true
		}
	}
	return false
}

// Toggle adds the item when absent and removes it when present, returning
// the new list and whether the item is now in it.
func (wl Wishlist) Toggle(item WishlistItem) (Wishlist, bool) {
	if wl.Has(item.Id) {
		return wl.Remove(item.Id), false
	}
	return append(append(Wishlist(nil), wl...), item), true
}

// Remove drops the entry with the given product id.
func (wl Wishlist) Remove(id string) Wishlist {
	out := make(Wishlist, 0, len(wl))
	for _, item := range wl {
		if item.Id != id {
			out = append(out, item)
		}
	}
	return out
}

type AddToCartRequest struct {
	ProductId string `json:"product_id" validate:"required,uuid4"`
	VariantId string `json:"variant_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type ToggleWishlistRequest struct {
	ProductId string `json:"product_id" validate:"required,uuid4"`
}
