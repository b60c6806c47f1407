package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartItem(productId, size, colour string, quantity, maxStock int, price uint64) CartItem {
	return CartItem{
		Id:        LineId(productId, size, colour),
		ProductId: productId,
		VariantId: productId + "-variant",
		Name:      "Banarasi Silk Saree",
		Price:     price,
		Quantity:  quantity,
		Size:      size,
		Colour:    colour,
		MaxStock:  maxStock,
	}
}

func TestLineId(t *testing.T) {
	assert.Equal(t, "p1-M-Red", LineId("p1", "M", "Red"))
	assert.NotEqual(t, LineId("p1", "M", "Red"), LineId("p1", "M", "Blue"),
		"same product in two colours must occupy two lines")
}

func TestCartAdd(t *testing.T) {
	t.Run("appends a new line", func(t *testing.T) {
		cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 2, 5, 189900))
		require.NoError(t, err)
		require.Len(t, cart, 1)
		assert.Equal(t, 2, cart[0].Quantity)
	})

	t.Run("merges repeat adds of the same combination", func(t *testing.T) {
		cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 2, 5, 189900))
		require.NoError(t, err)
		cart, err = cart.Add(cartItem("p1", "M", "Red", 1, 5, 189900))
		require.NoError(t, err)
		require.Len(t, cart, 1)
		assert.Equal(t, 3, cart[0].Quantity)
	})

	t.Run("different colour makes a second line", func(t *testing.T) {
		cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 1, 5, 189900))
		require.NoError(t, err)
		cart, err = cart.Add(cartItem("p1", "M", "Blue", 1, 5, 189900))
		require.NoError(t, err)
		assert.Len(t, cart, 2)
	})

	t.Run("quantity below one becomes one", func(t *testing.T) {
		cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 0, 5, 189900))
		require.NoError(t, err)
		assert.Equal(t, 1, cart[0].Quantity)
	})

	t.Run("rejects add beyond max stock", func(t *testing.T) {
		_, err := Cart{}.Add(cartItem("p1", "M", "Red", 6, 5, 189900))
		assert.ErrorIs(t, err, ErrExceedsStock)
	})

	t.Run("rejects merge beyond max stock and keeps the cart", func(t *testing.T) {
		cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 4, 5, 189900))
		require.NoError(t, err)
		out, err := cart.Add(cartItem("p1", "M", "Red", 2, 5, 189900))
		assert.ErrorIs(t, err, ErrExceedsStock)
		assert.Equal(t, 4, out[0].Quantity)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 2, 5, 189900))
	require.NoError(t, err)
	id := cart[0].Id

	t.Run("sets quantity", func(t *testing.T) {
		out, err := cart.UpdateQuantity(id, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, out[0].Quantity)
	})

	t.Run("quantity below one removes the line", func(t *testing.T) {
		out, err := cart.UpdateQuantity(id, 0)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("rejects quantity beyond max stock", func(t *testing.T) {
		_, err := cart.UpdateQuantity(id, 6)
		assert.ErrorIs(t, err, ErrExceedsStock)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		out, err := cart.UpdateQuantity("nope", 3)
		require.NoError(t, err)
		assert.Equal(t, cart, out)
	})
}

func TestCartRemoveAndTotal(t *testing.T) {
	cart, err := Cart{}.Add(cartItem("p1", "M", "Red", 2, 5, 189900))
	require.NoError(t, err)
	cart, err = cart.Add(cartItem("p2", "L", "Green", 1, 3, 219900))
	require.NoError(t, err)

	assert.Equal(t, uint64(2*189900+219900), cart.Total())

	out := cart.Remove(cart[0].Id)
	require.Len(t, out, 1)
	assert.Equal(t, "p2", out[0].ProductId)
	assert.Equal(t, uint64(219900), out.Total())

	assert.Len(t, cart.Remove("nope"), 2)
}

func TestWishlist(t *testing.T) {
	item := WishlistItem{Id: "p1", Name: "Banarasi Silk Saree", Price: 189900}

	t.Run("toggle adds when absent", func(t *testing.T) {
		wl, added := Wishlist{}.Toggle(item)
		assert.True(t, added)
		require.Len(t, wl, 1)
		assert.True(t, wl.Has("p1"))
	})

	t.Run("toggle removes when present", func(t *testing.T) {
		wl, _ := Wishlist{}.Toggle(item)
		wl, added := wl.Toggle(item)
		assert.False(t, added)
		assert.Empty(t, wl)
	})

	t.Run("remove drops by product id", func(t *testing.T) {
		wl, _ := Wishlist{}.Toggle(item)
		wl, _ = wl.Toggle(WishlistItem{Id: "p2", Name: "Cotton Kurta Set", Price: 99900})
		out := wl.Remove("p1")
		require.Len(t, out, 1)
		assert.False(t, out.Has("p1"))
		assert.True(t, out.Has("p2"))
	})
}
