// Package catalog derives product detail view state from a product's variant
// list and the viewer's current (size, colour) selection. Every function is a
// pure derivation: no I/O, no mutation of its inputs, deterministic for
// identical inputs. Callers re-run derivations on each selection change.
package catalog

import (
	"strings"

	"kalini_server/structs/tables"
)

// PlaceholderImage is returned when no image source yields anything, so a
// detail view never renders with zero images.
const PlaceholderImage = "/images/placeholder.jpg"

// Selection is the viewer's current choice on each axis. An empty string
// means "no preference" and matches any variant on that axis.
type Selection struct {
	Size   string `json:"size"`
	Colour string `json:"color"`
}

// Normalize prepares a free-text catalog label for comparison. Catalog data
// is free-text and varies in casing and padding, so all selection matching
// goes through this.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Equal reports normalized equality of two labels.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ResolveVariant returns the first variant in list order matching the
// selection on both axes, treating an unset axis as a wildcard. Returns nil
// when no variant satisfies both constraints. Duplicate (size, colour) pairs
// resolve to the earliest entry.
func ResolveVariant(variants []tables.ProductVariant, sel Selection) *tables.ProductVariant {
	for i := range variants {
		v := &variants[i]
		if sel.Size != "" && !Equal(v.Size, sel.Size) {
			continue
		}
		if sel.Colour != "" && !Equal(v.Colour, sel.Colour) {
			continue
		}
		return v
	}
	return nil
}

// Price returns the active variant's price, or the minimum listed price
// across all variants when no variant is resolved ("starting from" pricing).
func Price(variants []tables.ProductVariant, active *tables.ProductVariant) uint64 {
	if active != nil {
		return active.Price
	}
	return MinPrice(variants)
}

// Stock returns the active variant's stock, or the sum across all variants
// when no variant is resolved (an upper bound shown before the selection
// narrows to one SKU).
func Stock(variants []tables.ProductVariant, active *tables.ProductVariant) int {
	if active != nil {
		return int(active.Stock)
	}
	return TotalStock(variants)
}

// MinPrice returns the lowest variant price, zero for an empty variant list.
func MinPrice(variants []tables.ProductVariant) uint64 {
	var min uint64
	for i, v := range variants {
		if i == 0 || v.Price < min {
			min = v.Price
		}
	}
	return min
}

// MaxPrice returns the highest variant price, zero for an empty variant list.
func MaxPrice(variants []tables.ProductVariant) uint64 {
	var max uint64
	for _, v := range variants {
		if v.Price > max {
			max = v.Price
		}
	}
	return max
}

// TotalStock sums stock across all variants.
func TotalStock(variants []tables.ProductVariant) int {
	total := 0
	for _, v := range variants {
		total += int(v.Stock)
	}
	return total
}

// Gallery returns the image list for the detail view. First non-empty source
// wins: the active variant's own images, then the product's colour-tagged
// images for the selected colour, then the product's default images, then a
// single placeholder. Never returns an empty list.
func Gallery(product *tables.Product, active *tables.ProductVariant, sel Selection) []string {
	if active != nil {
		if urls := imageURLs(active.Images, nil); len(urls) > 0 {
			return urls
		}
		if product != nil {
			if urls := imageURLs(product.Images, func(img *tables.ProductImage) bool {
				return img.VariantID != nil && *img.VariantID == active.ID
			}); len(urls) > 0 {
				return urls
			}
		}
	}

	if product != nil {
		if sel.Colour != "" {
			if urls := imageURLs(product.Images, func(img *tables.ProductImage) bool {
				return img.VariantID == nil && img.Colour != "" && Equal(img.Colour, sel.Colour)
			}); len(urls) > 0 {
				return urls
			}
		}

		if urls := imageURLs(product.Images, func(img *tables.ProductImage) bool {
			return img.VariantID == nil && img.Colour == ""
		}); len(urls) > 0 {
			return urls
		}
	}

	return []string{PlaceholderImage}
}

func imageURLs(images []tables.ProductImage, keep func(*tables.ProductImage) bool) []string {
	urls := make([]string, 0, len(images))
	for i := range images {
		if keep != nil && !keep(&images[i]) {
			continue
		}
		if images[i].URL != "" {
			urls = append(urls, images[i].URL)
		}
	}
	return urls
}

// PickColour applies a colour choice to the selection, keeping the current
// size when the new pair has stock, otherwise switching to the first size in
// catalog order that pairs with the colour at stock > 0, otherwise unsetting
// size. Applying the same choice to the result is a no-op.
func PickColour(variants []tables.ProductVariant, sel Selection, colour string) Selection {
	next := Selection{Size: sel.Size, Colour: colour}
	if sel.Size != "" && pairInStock(variants, sel.Size, colour) {
		return next
	}
	next.Size = ""
	for _, size := range Sizes(variants) {
		if pairInStock(variants, size, colour) {
			next.Size = size
			break
		}
	}
	return next
}

// PickSize is the size-axis mirror of PickColour.
func PickSize(variants []tables.ProductVariant, sel Selection, size string) Selection {
	next := Selection{Size: size, Colour: sel.Colour}
	if sel.Colour != "" && pairInStock(variants, size, sel.Colour) {
		return next
	}
	next.Colour = ""
	for _, colour := range Colours(variants) {
		if pairInStock(variants, size, colour) {
			next.Colour = colour
			break
		}
	}
	return next
}

func pairInStock(variants []tables.ProductVariant, size, colour string) bool {
	for i := range variants {
		if Equal(variants[i].Size, size) && Equal(variants[i].Colour, colour) && variants[i].Stock > 0 {
			return true
		}
	}
	return false
}
