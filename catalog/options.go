package catalog

import "kalini_server/structs/tables"

// MaxVisibleOptions caps how many values of one axis a detail view shows
// before a "show all" control expands the list. Truncation is display only;
// resolution and availability always use the full list.
const MaxVisibleOptions = 10

// SelectionState classifies a selection against a variant list.
type SelectionState string

const (
	StateUnselected          SelectionState = "unselected"
	StatePartiallySelected   SelectionState = "partially_selected"
	StateSelectedValid       SelectionState = "selected_valid"
	StateSelectedUnavailable SelectionState = "selected_unavailable"
)

// CanPurchase reports whether the state permits adding to cart. Only a fully
// selected, in-stock combination qualifies.
func (s SelectionState) CanPurchase() bool {
	return s == StateSelectedValid
}

// StateOf classifies the selection. With both axes set, the resolved variant
// must exist and have stock for the state to be valid; products with no
// variants are always unavailable once fully selected.
func StateOf(variants []tables.ProductVariant, sel Selection) SelectionState {
	switch {
	case sel.Size == "" && sel.Colour == "":
		return StateUnselected
	case sel.Size == "" || sel.Colour == "":
		return StatePartiallySelected
	}
	if v := ResolveVariant(variants, sel); v != nil && v.Stock > 0 {
		return StateSelectedValid
	}
	return StateSelectedUnavailable
}

// Sizes returns the distinct sizes across the variant list in first-seen
// order, keeping the casing of the first occurrence. Dedup is by normalized
// value, so "M " and "m" collapse into one option.
func Sizes(variants []tables.ProductVariant) []string {
	return distinct(variants, func(v *tables.ProductVariant) string { return v.Size })
}

// Colours returns the distinct colours across the variant list, with the
// same ordering and dedup rules as Sizes.
func Colours(variants []tables.ProductVariant) []string {
	return distinct(variants, func(v *tables.ProductVariant) string { return v.Colour })
}

func distinct(variants []tables.ProductVariant, axis func(*tables.ProductVariant) string) []string {
	seen := make(map[string]struct{}, len(variants))
	values := make([]string, 0, len(variants))
	for i := range variants {
		value := axis(&variants[i])
		if value == "" {
			continue
		}
		key := Normalize(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, value)
	}
	return values
}

// VisibleOptions truncates an option list to MaxVisibleOptions unless the
// viewer asked for the full list.
func VisibleOptions(options []string, showAll bool) []string {
	if showAll || len(options) <= MaxVisibleOptions {
		return options
	}
	return options[:MaxVisibleOptions]
}

// SizeDisabled reports whether choosing the size would leave nothing to buy:
// no variant with that size, constrained to the currently selected colour
// when one is set, has stock. Disabled options stay rendered but inert.
func SizeDisabled(variants []tables.ProductVariant, size string, sel Selection) bool {
	for i := range variants {
		v := &variants[i]
		if !Equal(v.Size, size) {
			continue
		}
		if sel.Colour != "" && !Equal(v.Colour, sel.Colour) {
			continue
		}
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// ColourDisabled is the colour-axis mirror of SizeDisabled.
func ColourDisabled(variants []tables.ProductVariant, colour string, sel Selection) bool {
	for i := range variants {
		v := &variants[i]
		if !Equal(v.Colour, colour) {
			continue
		}
		if sel.Size != "" && !Equal(v.Size, sel.Size) {
			continue
		}
		if v.Stock > 0 {
			return false
		}
	}
	return true
}

// DefaultSelection seeds a fresh detail view: the first in-stock variant's
// pair, falling back to the first variant when everything is sold out, empty
// for a product with no variants.
func DefaultSelection(variants []tables.ProductVariant) Selection {
	for i := range variants {
		if variants[i].Stock > 0 {
			return Selection{Size: variants[i].Size, Colour: variants[i].Colour}
		}
	}
	if len(variants) > 0 {
		return Selection{Size: variants[0].Size, Colour: variants[0].Colour}
	}
	return Selection{}
}
