package state

import (
	"testing"

	"campus-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartMergesByTriple(t *testing.T) {
	s := New()

	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 1, SelectedColor: "Black", Price: 150, Name: "Tee"})
	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 2, SelectedColor: "Black", Price: 150, Name: "Tee"})

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
	assert.Equal(t, int64(450), s.CartTotal())

	s.RemoveFromCart("p1")
	assert.Empty(t, s.Cart())
}

func TestAddToCartDistinctVariants(t *testing.T) {
	s := New()

	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 1, SelectedColor: "Black", Price: 100})
	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 1, SelectedColor: "White", Price: 100})
	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 1, SelectedColor: "Black", SelectedSize: "L", Price: 100})

	assert.Len(t, s.Cart(), 3)
}

func TestAddToCartMergeSumsAllQuantities(t *testing.T) {
	s := New()

	quantities := []int{1, 4, 2, 3}
	sum := 0
	for _, q := range quantities {
		s.AddToCart(models.CartItem{ProductID: "p9", Quantity: q, Price: 10})
		sum += q
	}

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, sum, cart[0].Quantity)
}

func TestRemoveThenAddLeavesSingleFreshLine(t *testing.T) {
	s := New()

	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 5, Price: 100})
	s.RemoveFromCart("p1")
	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 2, Price: 100})

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestUpdateCartQuantity(t *testing.T) {
	s := New()

	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 1, Price: 100})
	s.UpdateCartQuantity("p1", 7)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 7, cart[0].Quantity)

	// Zero quantity is equivalent to removal.
	s.UpdateCartQuantity("p1", 0)
	assert.Empty(t, s.Cart())

	// Unknown product is a no-op.
	s.UpdateCartQuantity("missing", 3)
	assert.Empty(t, s.Cart())
}

func TestClearCart(t *testing.T) {
	s := New()

	s.AddToCart(models.CartItem{ProductID: "p1", Quantity: 1, Price: 100})
	s.AddToCart(models.CartItem{ProductID: "p2", Quantity: 2, Price: 50})
	s.ClearCart()

	assert.Empty(t, s.Cart())
	assert.Zero(t, s.CartTotal())
}

func TestDefaultQuantityIsOne(t *testing.T) {
	s := New()

	s.AddToCart(models.CartItem{ProductID: "p1", Price: 100})

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}
