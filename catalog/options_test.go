package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"kalini_server/structs/tables"
)

func TestSizesAndColours(t *testing.T) {
	variants := sareeVariants()

	t.Run("distinct values in first seen order", func(t *testing.T) {
		assert.Equal(t, []string{"S", "M", "L"}, Sizes(variants))
		assert.Equal(t, []string{"Red", "Blue", "Green"}, Colours(variants))
	})

	t.Run("dedup is normalized, first casing wins", func(t *testing.T) {
		mixed := []tables.ProductVariant{
			variant("M", "Maroon", 1, 100),
			variant(" m ", "MAROON", 2, 100),
			variant("L", "maroon ", 1, 100),
		}
		assert.Equal(t, []string{"M", "L"}, Sizes(mixed))
		assert.Equal(t, []string{"Maroon"}, Colours(mixed))
	})

	t.Run("blank axis values are skipped", func(t *testing.T) {
		freeSize := []tables.ProductVariant{
			variant("", "Red", 1, 100),
			variant("", "Blue", 1, 100),
		}
		assert.Empty(t, Sizes(freeSize))
		assert.Equal(t, []string{"Red", "Blue"}, Colours(freeSize))
	})

	t.Run("empty variant list", func(t *testing.T) {
		assert.Empty(t, Sizes(nil))
		assert.Empty(t, Colours(nil))
	})
}

func TestVisibleOptions(t *testing.T) {
	many := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		many = append(many, fmt.Sprintf("colour-%d", i))
	}

	assert.Len(t, VisibleOptions(many, false), MaxVisibleOptions)
	assert.Len(t, VisibleOptions(many, true), 14)

	few := []string{"S", "M", "L"}
	assert.Equal(t, few, VisibleOptions(few, false))
}

func TestOptionDisabled(t *testing.T) {
	variants := sareeVariants()

	t.Run("unconstrained axis", func(t *testing.T) {
		assert.False(t, SizeDisabled(variants, "S", Selection{}))
		assert.False(t, ColourDisabled(variants, "Red", Selection{}))
		// Every Green variant has zero stock.
		assert.True(t, ColourDisabled(variants, "Green", Selection{}))
	})

	t.Run("constrained by the other axis", func(t *testing.T) {
		// S/Red exists but is sold out.
		assert.True(t, SizeDisabled(variants, "S", Selection{Colour: "Red"}))
		assert.False(t, SizeDisabled(variants, "S", Selection{Colour: "Blue"}))
		// L/Blue does not exist at all.
		assert.True(t, SizeDisabled(variants, "L", Selection{Colour: "Blue"}))
		assert.True(t, ColourDisabled(variants, "Blue", Selection{Size: "L"}))
	})

	t.Run("recomputed per selection change", func(t *testing.T) {
		sel := Selection{Size: "M", Colour: "Red"}
		assert.False(t, SizeDisabled(variants, "L", sel))

		sel = PickColour(variants, sel, "Blue")
		assert.True(t, SizeDisabled(variants, "L", sel))
	})

	t.Run("unknown value is disabled", func(t *testing.T) {
		assert.True(t, SizeDisabled(variants, "XXL", Selection{}))
		assert.True(t, ColourDisabled(variants, "Gold", Selection{}))
	})
}

func TestStateOf(t *testing.T) {
	variants := sareeVariants()

	cases := []struct {
		name string
		sel  Selection
		want SelectionState
		buy  bool
	}{
		{"nothing selected", Selection{}, StateUnselected, false},
		{"size only", Selection{Size: "M"}, StatePartiallySelected, false},
		{"colour only", Selection{Colour: "Red"}, StatePartiallySelected, false},
		{"resolved with stock", Selection{Size: "M", Colour: "Red"}, StateSelectedValid, true},
		{"resolved without stock", Selection{Size: "S", Colour: "Red"}, StateSelectedUnavailable, false},
		{"no variant resolves", Selection{Size: "L", Colour: "Blue"}, StateSelectedUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := StateOf(variants, tc.sel)
			assert.Equal(t, tc.want, state)
			assert.Equal(t, tc.buy, state.CanPurchase())
		})
	}

	t.Run("no variants never becomes purchasable", func(t *testing.T) {
		state := StateOf(nil, Selection{Size: "M", Colour: "Red"})
		assert.Equal(t, StateSelectedUnavailable, state)
		assert.False(t, state.CanPurchase())
	})
}

func TestDefaultSelection(t *testing.T) {
	t.Run("first in stock variant", func(t *testing.T) {
		sel := DefaultSelection(sareeVariants())
		assert.Equal(t, Selection{Size: "M", Colour: "Red"}, sel)
	})

	t.Run("everything sold out falls back to the first variant", func(t *testing.T) {
		soldOut := []tables.ProductVariant{
			variant("S", "Red", 0, 100),
			variant("M", "Blue", 0, 100),
		}
		assert.Equal(t, Selection{Size: "S", Colour: "Red"}, DefaultSelection(soldOut))
	})

	t.Run("no variants", func(t *testing.T) {
		assert.Equal(t, Selection{}, DefaultSelection(nil))
	})
}
