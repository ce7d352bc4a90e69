package state

import (
	"campus-market/internal/models"
)

// AddToCart appends an item, or merges quantities when a line with the same
// (product, size, color) triple already exists. Merging is the only identity
// rule; the cart never holds two lines with the same triple.
func (s *Store) AddToCart(item models.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for i := range s.state.Cart {
		if s.state.Cart[i].Key() == key {
			s.state.Cart[i].Quantity += item.Quantity
			s.markDirty()
			return
		}
	}
	s.state.Cart = append(s.state.Cart, item)
	s.markDirty()
}

// UpdateCartQuantity sets the quantity on every line of a product.
// A quantity of zero or less removes the line; an unknown product is a no-op.
func (s *Store) UpdateCartQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Cart {
		if s.state.Cart[i].ProductID == productID {
			s.state.Cart[i].Quantity = quantity
		}
	}
	s.markDirty()
}

// RemoveFromCart drops all lines of a product.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.Cart[:0]
	for _, item := range s.state.Cart {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.state.Cart = kept
	s.markDirty()
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Cart = []models.CartItem{}
	s.markDirty()
}

// Cart returns a copy of the cart lines, never nil.
func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.CartItem, 0, len(s.state.Cart)), s.state.Cart...)
}

// CartTotal sums price times quantity over all lines.
func (s *Store) CartTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, item := range s.state.Cart {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
