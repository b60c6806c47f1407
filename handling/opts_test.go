package handling

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductListOptions(t *testing.T) {
	t.Run("no query params", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products", nil)
		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)
		assert.Zero(t, opts.Page)
		assert.Empty(t, opts.Category)
	})

	t.Run("full set", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/products?page=2&page_size=50&is_active=true&category=sarees&material=silk"+
				"&search=banarasi&min_price=100000&max_price=500000&codes=SAR-1,SAR-2"+
				"&sort_by=name&sort_direction=asc&include_variants=true&include_images=true", nil)

		opts, err := ParseProductListOptions(r)
		require.NoError(t, err)

		assert.Equal(t, 2, opts.Page)
		assert.Equal(t, 50, opts.PageSize)
		require.NotNil(t, opts.IsActive)
		assert.True(t, *opts.IsActive)
		assert.Equal(t, "sarees", opts.Category)
		assert.Equal(t, "silk", opts.Material)
		assert.Equal(t, "banarasi", opts.SearchTerm)
		require.NotNil(t, opts.MinPrice)
		assert.Equal(t, uint64(100000), *opts.MinPrice)
		assert.Equal(t, []string{"SAR-1", "SAR-2"}, opts.Codes)
		assert.Equal(t, "name", opts.SortBy)
		assert.Equal(t, "ASC", opts.SortDirection)
		assert.True(t, opts.IncludeVariants)
		assert.True(t, opts.IncludeImages)
	})

	t.Run("malformed numeric", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?page=abc", nil)
		_, err := ParseProductListOptions(r)
		assert.Error(t, err)
	})

	t.Run("malformed bool", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/products?is_active=maybe", nil)
		_, err := ParseProductListOptions(r)
		assert.Error(t, err)
	})
}
