package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalini_server/structs/tables"
)

func variant(size, colour string, stock uint16, price uint64) tables.ProductVariant {
	return tables.ProductVariant{
		ID:     uuid.New(),
		Size:   size,
		Colour: colour,
		Stock:  stock,
		Price:  price,
	}
}

// sareeVariants is a representative catalog entry: two colours, three sizes,
// one sold-out combination and one colour that is entirely sold out.
func sareeVariants() []tables.ProductVariant {
	return []tables.ProductVariant{
		variant("S", "Red", 0, 249900),
		variant("M", "Red", 4, 249900),
		variant("L", "Red", 2, 259900),
		variant("S", "Blue", 3, 239900),
		variant("M", "Blue", 1, 239900),
		variant("L", "Green", 0, 219900),
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "red", Normalize("  Red "))
	assert.Equal(t, "xxl", Normalize("XXL"))
	assert.Equal(t, "", Normalize("   "))

	assert.True(t, Equal(" Red", "red "))
	assert.True(t, Equal("", "  "))
	assert.False(t, Equal("Red", "Blue"))
}

func TestResolveVariant(t *testing.T) {
	variants := sareeVariants()

	t.Run("both axes set resolves exact pair", func(t *testing.T) {
		v := ResolveVariant(variants, Selection{Size: "M", Colour: "Red"})
		require.NotNil(t, v)
		assert.Equal(t, "M", v.Size)
		assert.Equal(t, "Red", v.Colour)
	})

	t.Run("matching ignores case and padding", func(t *testing.T) {
		v := ResolveVariant(variants, Selection{Size: " m ", Colour: "RED"})
		require.NotNil(t, v)
		assert.Equal(t, "M", v.Size)
	})

	t.Run("unset axis is a wildcard", func(t *testing.T) {
		v := ResolveVariant(variants, Selection{Colour: "Blue"})
		require.NotNil(t, v)
		assert.Equal(t, "S", v.Size)

		v = ResolveVariant(variants, Selection{Size: "L"})
		require.NotNil(t, v)
		assert.Equal(t, "Red", v.Colour)
	})

	t.Run("empty selection resolves first variant", func(t *testing.T) {
		v := ResolveVariant(variants, Selection{})
		require.NotNil(t, v)
		assert.Equal(t, "S", v.Size)
		assert.Equal(t, "Red", v.Colour)
	})

	t.Run("no match returns nil", func(t *testing.T) {
		assert.Nil(t, ResolveVariant(variants, Selection{Size: "XXL", Colour: "Red"}))
		assert.Nil(t, ResolveVariant(variants, Selection{Colour: "Gold"}))
	})

	t.Run("duplicate pairs resolve to the earliest entry", func(t *testing.T) {
		dupes := []tables.ProductVariant{
			variant("M", "Red", 2, 100),
			variant("M", "Red", 9, 200),
		}
		v := ResolveVariant(dupes, Selection{Size: "M", Colour: "Red"})
		require.NotNil(t, v)
		assert.Equal(t, uint64(100), v.Price)
	})

	t.Run("no variants returns nil without panicking", func(t *testing.T) {
		assert.Nil(t, ResolveVariant(nil, Selection{Size: "M", Colour: "Red"}))
		assert.Nil(t, ResolveVariant([]tables.ProductVariant{}, Selection{}))
	})

	t.Run("single variant product resolves from empty selection", func(t *testing.T) {
		one := []tables.ProductVariant{variant("XXL", "Pink", 3, 99900)}
		v := ResolveVariant(one, Selection{})
		require.NotNil(t, v)
		assert.Equal(t, "XXL", v.Size)
		assert.Equal(t, "Pink", v.Colour)
		assert.Equal(t, uint64(99900), Price(one, v))
		assert.Equal(t, 3, Stock(one, v))
	})
}

func TestPriceAndStock(t *testing.T) {
	variants := sareeVariants()

	t.Run("resolved variant wins", func(t *testing.T) {
		v := ResolveVariant(variants, Selection{Size: "L", Colour: "Red"})
		require.NotNil(t, v)
		assert.Equal(t, uint64(259900), Price(variants, v))
		assert.Equal(t, 2, Stock(variants, v))
	})

	t.Run("unresolved falls back to minimum price and summed stock", func(t *testing.T) {
		assert.Equal(t, uint64(219900), Price(variants, nil))
		assert.Equal(t, 10, Stock(variants, nil))
	})

	t.Run("no variants yields zero", func(t *testing.T) {
		assert.Equal(t, uint64(0), Price(nil, nil))
		assert.Equal(t, 0, Stock(nil, nil))
		assert.Equal(t, uint64(0), MaxPrice(nil))
	})

	t.Run("price range", func(t *testing.T) {
		assert.Equal(t, uint64(219900), MinPrice(variants))
		assert.Equal(t, uint64(259900), MaxPrice(variants))
	})
}

func TestGallery(t *testing.T) {
	variantID := uuid.New()
	active := tables.ProductVariant{ID: variantID, Size: "M", Colour: "Red", Stock: 1, Price: 100}

	colourOf := func(c string) *tables.Product {
		return &tables.Product{Images: []tables.ProductImage{
			{Colour: c, URL: "/images/colour-1.jpg"},
			{Colour: c, URL: "/images/colour-2.jpg"},
			{URL: "/images/default-1.jpg"},
		}}
	}

	t.Run("variant images take precedence", func(t *testing.T) {
		v := active
		v.Images = []tables.ProductImage{
			{VariantID: &variantID, URL: "/images/variant-1.jpg"},
			{VariantID: &variantID, URL: "/images/variant-2.jpg"},
		}
		got := Gallery(colourOf("Red"), &v, Selection{Size: "M", Colour: "Red"})
		assert.Equal(t, []string{"/images/variant-1.jpg", "/images/variant-2.jpg"}, got)
	})

	t.Run("variant images found on the product load", func(t *testing.T) {
		p := &tables.Product{Images: []tables.ProductImage{
			{VariantID: &variantID, URL: "/images/variant-1.jpg"},
			{URL: "/images/default-1.jpg"},
		}}
		got := Gallery(p, &active, Selection{Size: "M", Colour: "Red"})
		assert.Equal(t, []string{"/images/variant-1.jpg"}, got)
	})

	t.Run("colour gallery when the variant has no images", func(t *testing.T) {
		got := Gallery(colourOf("Red"), &active, Selection{Size: "M", Colour: "Red"})
		assert.Equal(t, []string{"/images/colour-1.jpg", "/images/colour-2.jpg"}, got)
	})

	t.Run("colour lookup is normalized", func(t *testing.T) {
		got := Gallery(colourOf("Red"), nil, Selection{Colour: " red "})
		assert.Equal(t, []string{"/images/colour-1.jpg", "/images/colour-2.jpg"}, got)
	})

	t.Run("default gallery when the colour has none", func(t *testing.T) {
		got := Gallery(colourOf("Blue"), &active, Selection{Size: "M", Colour: "Red"})
		assert.Equal(t, []string{"/images/default-1.jpg"}, got)
	})

	t.Run("placeholder when nothing matches", func(t *testing.T) {
		assert.Equal(t, []string{PlaceholderImage}, Gallery(&tables.Product{}, nil, Selection{}))
		assert.Equal(t, []string{PlaceholderImage}, Gallery(nil, nil, Selection{Colour: "Red"}))
	})
}

func TestPickColour(t *testing.T) {
	variants := sareeVariants()

	t.Run("keeps the current size when the pair has stock", func(t *testing.T) {
		sel := PickColour(variants, Selection{Size: "M", Colour: "Red"}, "Blue")
		assert.Equal(t, Selection{Size: "M", Colour: "Blue"}, sel)
	})

	t.Run("switches to the first size in stock for the colour", func(t *testing.T) {
		// L/Blue does not exist, so the size scan lands on S.
		sel := PickColour(variants, Selection{Size: "L", Colour: "Red"}, "Blue")
		assert.Equal(t, Selection{Size: "S", Colour: "Blue"}, sel)
	})

	t.Run("sold out pair falls through to the scan", func(t *testing.T) {
		// S/Red has zero stock, so picking Red from S lands on M.
		sel := PickColour(variants, Selection{Size: "S", Colour: "Blue"}, "Red")
		assert.Equal(t, Selection{Size: "M", Colour: "Red"}, sel)
	})

	t.Run("unsets size when the colour is entirely sold out", func(t *testing.T) {
		sel := PickColour(variants, Selection{Size: "L", Colour: "Red"}, "Green")
		assert.Equal(t, Selection{Size: "", Colour: "Green"}, sel)
		assert.Equal(t, StatePartiallySelected, StateOf(variants, sel))
	})

	t.Run("no size selected scans from the top", func(t *testing.T) {
		sel := PickColour(variants, Selection{}, "Red")
		assert.Equal(t, Selection{Size: "M", Colour: "Red"}, sel)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := PickColour(variants, Selection{Size: "L", Colour: "Red"}, "Blue")
		twice := PickColour(variants, once, "Blue")
		assert.Equal(t, once, twice)
	})
}

func TestPickSize(t *testing.T) {
	variants := sareeVariants()

	t.Run("keeps the current colour when the pair has stock", func(t *testing.T) {
		sel := PickSize(variants, Selection{Size: "S", Colour: "Blue"}, "M")
		assert.Equal(t, Selection{Size: "M", Colour: "Blue"}, sel)
	})

	t.Run("switches to the first colour in stock for the size", func(t *testing.T) {
		sel := PickSize(variants, Selection{Size: "M", Colour: "Blue"}, "L")
		assert.Equal(t, Selection{Size: "L", Colour: "Red"}, sel)
	})

	t.Run("unsets colour when the size is entirely sold out", func(t *testing.T) {
		onlyGreenL := []tables.ProductVariant{
			variant("M", "Red", 2, 100),
			variant("L", "Green", 0, 100),
		}
		sel := PickSize(onlyGreenL, Selection{Size: "M", Colour: "Red"}, "L")
		assert.Equal(t, Selection{Size: "L", Colour: ""}, sel)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := PickSize(variants, Selection{Size: "M", Colour: "Blue"}, "L")
		twice := PickSize(variants, once, "L")
		assert.Equal(t, once, twice)
	})
}
