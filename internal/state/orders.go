package state

import (
	"campus-market/internal/models"

	"go.uber.org/zap"
)

// AddOrder appends a buyer order.
func (s *Store) AddOrder(order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Orders = append(s.state.Orders, order)
	s.markDirty()
}

// Orders returns the buyer orders for a user, newest first.
func (s *Store) Orders(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0)
	for i := len(s.state.Orders) - 1; i >= 0; i-- {
		if s.state.Orders[i].UserID == userID {
			out = append(out, s.state.Orders[i])
		}
	}
	return out
}

// OrderByID looks up a buyer order.
func (s *Store) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.state.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// AddVendorOrder appends a seller-facing order.
func (s *Store) AddVendorOrder(order models.VendorOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.VendorOrders = append(s.state.VendorOrders, order)
	s.markDirty()
}

// VendorOrderByID looks up a vendor order.
func (s *Store) VendorOrderByID(id string) (models.VendorOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.state.VendorOrders {
		if o.ID == id {
			return o, true
		}
	}
	return models.VendorOrder{}, false
}

// VendorOrders returns vendor orders recorded under any of the given
// business ids, newest first. Callers pass the reconciled acceptable-id set
// so orders recorded under either identity space are included.
func (s *Store) VendorOrders(businessIDs ...string) []models.VendorOrder {
	accept := make(map[string]struct{}, len(businessIDs))
	for _, id := range businessIDs {
		accept[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VendorOrder, 0)
	for i := len(s.state.VendorOrders) - 1; i >= 0; i-- {
		if _, ok := accept[s.state.VendorOrders[i].BusinessID]; ok {
			out = append(out, s.state.VendorOrders[i])
		}
	}
	return out
}

// VendorOrdersByBuyerOrder returns every vendor order linked to a buyer
// order.
func (s *Store) VendorOrdersByBuyerOrder(buyerOrderID string) []models.VendorOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VendorOrder, 0)
	for _, o := range s.state.VendorOrders {
		if o.BuyerOrderID == buyerOrderID {
			out = append(out, o)
		}
	}
	return out
}

// CancelOrder cancels a buyer order directly, for orders with no linked
// vendor orders to drive the mirror. Only pending orders can be cancelled.
func (s *Store) CancelOrder(id string, update models.OrderUpdate) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Orders {
		if s.state.Orders[i].ID == id {
			o := &s.state.Orders[i]
			if !models.CanTransition(o.Status, models.StatusCancelled, false) {
				return models.Order{}, models.ErrInvalidTransition
			}
			o.Status = models.StatusCancelled
			o.UpdatedAt = update.Timestamp
			o.TrackingUpdates = append(o.TrackingUpdates, update)
			s.markDirty()
			return *o, nil
		}
	}
	return models.Order{}, models.ErrNotFound
}

// TransitionVendorOrder moves a vendor order to a new status and, under the
// same lock, mirrors the change into the linked buyer order: the tracking
// update is appended, and the buyer order's status follows only when the
// move is forward for it too. A buyer order fed by several vendor orders
// keeps the furthest status reached rather than flapping back when a
// slower vendor order catches up. Monotonicity is enforced here so
// concurrent callers cannot interleave a regression.
// A vendor order without linkage has its own status updated and the mirror
// skipped; that is best-effort, not an error.
func (s *Store) TransitionVendorOrder(id, to string, deliveryAvailable bool, update models.OrderUpdate) (models.VendorOrder, *models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var vo *models.VendorOrder
	for i := range s.state.VendorOrders {
		if s.state.VendorOrders[i].ID == id {
			vo = &s.state.VendorOrders[i]
			break
		}
	}
	if vo == nil {
		return models.VendorOrder{}, nil, models.ErrNotFound
	}

	if !models.CanTransition(vo.Status, to, deliveryAvailable) {
		s.logger.Warn("Rejected status transition",
			zap.String("vendor_order_id", id),
			zap.String("from", vo.Status),
			zap.String("to", to))
		return models.VendorOrder{}, nil, models.ErrInvalidTransition
	}

	vo.Status = to
	vo.UpdatedAt = update.Timestamp

	var mirrored *models.Order
	if vo.BuyerOrderID != "" {
		for i := range s.state.Orders {
			if s.state.Orders[i].ID == vo.BuyerOrderID {
				o := &s.state.Orders[i]
				if models.CanTransition(o.Status, to, deliveryAvailable) {
					o.Status = to
				}
				o.UpdatedAt = update.Timestamp
				o.TrackingUpdates = append(o.TrackingUpdates, update)
				if to == models.StatusDelivered {
					o.CanReview = true
				}
				copied := *o
				mirrored = &copied
				break
			}
		}
	}
	if mirrored == nil {
		// LinkageMissing: logged, never fatal.
		s.logger.Info("No linked buyer order, mirror skipped",
			zap.String("vendor_order_id", id),
			zap.String("buyer_order_id", vo.BuyerOrderID))
	}

	s.markDirty()
	return *vo, mirrored, nil
}
