package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-market/internal/models"
	"campus-market/internal/state"
	"campus-market/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService owns checkout and the order status lifecycle, including the
// rule that a vendor order status change is mirrored into the linked buyer
// order.
type OrderService struct {
	store     *state.Store
	identity  *IdentityService
	publisher EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *state.Store, identity *IdentityService, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		identity:  identity,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// PlaceOrderRequest carries the checkout form.
type PlaceOrderRequest struct {
	Delivery      models.DeliveryInfo `json:"delivery" binding:"required"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
}

// PlaceOrder turns the current cart into one buyer order plus one vendor
// order per business. The linkage between the two is captured here, at
// creation time, via BuyerOrderID. The cart is cleared on success.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	user, ok := s.store.CurrentUser()
	if !ok {
		return models.Order{}, fmt.Errorf("no active session: %w", models.ErrValidation)
	}

	cart := s.store.Cart()
	if len(cart) == 0 {
		return models.Order{}, fmt.Errorf("cart is empty: %w", models.ErrValidation)
	}
	if req.Delivery.Hall == "" || req.Delivery.Room == "" {
		return models.Order{}, fmt.Errorf("delivery hall and room are required: %w", models.ErrValidation)
	}
	if req.PaymentMethod == "" {
		return models.Order{}, fmt.Errorf("payment method is required: %w", models.ErrValidation)
	}

	ts := time.Now().UTC()

	// Group cart lines by the owning business. Lines whose product is no
	// longer resolvable stay on the buyer order but produce no vendor order.
	groups := make(map[string][]models.CartItem)
	var groupOrder []string
	for _, item := range cart {
		businessID := ""
		if p, ok := s.store.ProductByID(item.ProductID); ok {
			businessID = p.BusinessID
		} else {
			s.logger.Warn("Cart line references unknown product",
				zap.String("product_id", item.ProductID))
		}
		if _, seen := groups[businessID]; !seen {
			groupOrder = append(groupOrder, businessID)
		}
		groups[businessID] = append(groups[businessID], item)
	}

	var total int64
	for _, item := range cart {
		total += item.Price * int64(item.Quantity)
	}
	for _, businessID := range groupOrder {
		if businessID == "" {
			continue
		}
		if vb, err := s.identity.ResolveBusiness(businessID); err == nil && vb.Delivery.Available {
			total += vb.Delivery.Fee
		}
	}

	order := models.Order{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		Items:         cart,
		Total:         total,
		Status:        models.StatusPending,
		Delivery:      req.Delivery,
		PaymentMethod: req.PaymentMethod,
		TrackingUpdates: []models.OrderUpdate{{
			ID:        uuid.New().String(),
			Status:    models.StatusPending,
			Message:   models.StatusMessage(models.StatusPending),
			Timestamp: ts,
		}},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.store.AddOrder(order)
	util.OrdersPlacedTotal.Inc()

	for _, businessID := range groupOrder {
		if businessID == "" {
			continue
		}
		items := groups[businessID]

		var sub int64
		for _, item := range items {
			sub += item.Price * int64(item.Quantity)
		}
		if vb, err := s.identity.ResolveBusiness(businessID); err == nil && vb.Delivery.Available {
			sub += vb.Delivery.Fee
		}

		vo := models.VendorOrder{
			ID:            uuid.New().String(),
			BusinessID:    businessID,
			BuyerOrderID:  order.ID,
			CustomerID:    user.ID,
			CustomerName:  user.Name,
			Items:         items,
			Total:         sub,
			Status:        models.StatusPending,
			Delivery:      req.Delivery,
			PaymentMethod: req.PaymentMethod,
			CreatedAt:     ts,
			UpdatedAt:     ts,
		}
		s.store.AddVendorOrder(vo)

		s.publishOrderPlaced(ctx, vo)
	}

	s.store.ClearCart()

	s.notify(models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationOrderUpdate,
		Title:   "Order placed",
		Message: fmt.Sprintf("Your order of %d item(s) has been placed", len(cart)),
		OrderID: order.ID,
	})

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", user.ID),
		zap.Int64("total", total),
		zap.Int("vendor_orders", len(groupOrder)))

	return order, nil
}

// GetOrder retrieves a buyer order by id.
func (s *OrderService) GetOrder(orderID string) (models.Order, error) {
	order, ok := s.store.OrderByID(orderID)
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	return order, nil
}

// UpdateVendorOrderStatus advances a vendor order through the lifecycle.
// One call: sets the vendor order status, mirrors it onto the linked buyer
// order with exactly one appended tracking update, notifies the buyer, and
// publishes the change. Regressions and out_for_delivery on a no-delivery
// business are rejected.
func (s *OrderService) UpdateVendorOrderStatus(ctx context.Context, vendorOrderID, to string) (models.VendorOrder, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateVendorOrderStatus")
	defer span.End()

	if !models.ValidStatus(to) {
		return models.VendorOrder{}, fmt.Errorf("unknown status %q: %w", to, models.ErrValidation)
	}

	existing, ok := s.store.VendorOrderByID(vendorOrderID)
	if !ok {
		return models.VendorOrder{}, fmt.Errorf("vendor order %s: %w", vendorOrderID, models.ErrNotFound)
	}

	deliveryAvailable := s.identity.DeliveryAvailable(existing.BusinessID)

	update := models.OrderUpdate{
		ID:        uuid.New().String(),
		Status:    to,
		Message:   models.StatusMessage(to),
		Timestamp: time.Now().UTC(),
	}

	vo, mirrored, err := s.store.TransitionVendorOrder(vendorOrderID, to, deliveryAvailable, update)
	if err != nil {
		util.OrderTransitionsRejected.WithLabelValues(rejectReason(err)).Inc()
		return models.VendorOrder{}, err
	}

	util.OrderTransitionsTotal.WithLabelValues(to).Inc()
	if to == models.StatusCancelled {
		util.OrdersCancelledTotal.Inc()
	}
	if mirrored == nil {
		util.OrderMirrorSkippedTotal.Inc()
	}

	s.notify(models.Notification{
		UserID:     vo.CustomerID,
		Type:       models.NotificationOrderUpdate,
		Title:      "Order update",
		Message:    models.StatusMessage(to),
		OrderID:    vo.BuyerOrderID,
		BusinessID: vo.BusinessID,
	})

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: update.Timestamp,
		},
		VendorOrderID: vo.ID,
		BuyerOrderID:  vo.BuyerOrderID,
		BusinessID:    vo.BusinessID,
		FromStatus:    existing.Status,
		ToStatus:      to,
	}
	if s.publisher != nil {
		if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	s.logger.Info("Vendor order status updated",
		zap.String("vendor_order_id", vo.ID),
		zap.String("from", existing.Status),
		zap.String("to", to))

	return vo, nil
}

// AdvanceVendorOrder moves a vendor order to its natural next status.
func (s *OrderService) AdvanceVendorOrder(ctx context.Context, vendorOrderID string) (models.VendorOrder, error) {
	existing, ok := s.store.VendorOrderByID(vendorOrderID)
	if !ok {
		return models.VendorOrder{}, fmt.Errorf("vendor order %s: %w", vendorOrderID, models.ErrNotFound)
	}

	next := models.NextStatus(existing.Status, s.identity.DeliveryAvailable(existing.BusinessID))
	if next == "" {
		return models.VendorOrder{}, fmt.Errorf("order is in terminal status %q: %w", existing.Status, models.ErrInvalidTransition)
	}
	return s.UpdateVendorOrderStatus(ctx, vendorOrderID, next)
}

// CancelBuyerOrder cancels a pending buyer order together with every linked
// vendor order. An order with no linked vendor orders is cancelled directly,
// since there is nothing to drive the mirror.
func (s *OrderService) CancelBuyerOrder(ctx context.Context, orderID string) error {
	order, ok := s.store.OrderByID(orderID)
	if !ok {
		return fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	if order.Status != models.StatusPending {
		return fmt.Errorf("only pending orders can be cancelled: %w", models.ErrInvalidTransition)
	}

	vendorOrders := s.store.VendorOrdersByBuyerOrder(orderID)
	if len(vendorOrders) == 0 {
		cancelled, err := s.store.CancelOrder(orderID, models.OrderUpdate{
			ID:        uuid.New().String(),
			Status:    models.StatusCancelled,
			Message:   models.StatusMessage(models.StatusCancelled),
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		util.OrdersCancelledTotal.Inc()
		s.notify(models.Notification{
			UserID:  cancelled.UserID,
			Type:    models.NotificationOrderUpdate,
			Title:   "Order update",
			Message: models.StatusMessage(models.StatusCancelled),
			OrderID: cancelled.ID,
		})
		return nil
	}

	for _, vo := range vendorOrders {
		if _, err := s.UpdateVendorOrderStatus(ctx, vo.ID, models.StatusCancelled); err != nil {
			s.logger.Error("Failed to cancel vendor order",
				zap.String("vendor_order_id", vo.ID),
				zap.Error(err))
		}
	}
	return nil
}

// VendorOrdersFor lists the orders visible to a business dashboard, using
// the reconciled acceptable-id set so orders recorded under either identity
// space show up.
func (s *OrderService) VendorOrdersFor(businessID string) []models.VendorOrder {
	return s.store.VendorOrders(s.identity.AcceptableIDs(businessID)...)
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, vo models.VendorOrder) {
	if s.publisher == nil {
		return
	}
	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: vo.CreatedAt,
		},
		VendorOrderID: vo.ID,
		BuyerOrderID:  vo.BuyerOrderID,
		BusinessID:    vo.BusinessID,
		CustomerID:    vo.CustomerID,
		CustomerName:  vo.CustomerName,
		Total:         vo.Total,
		Items:         vo.Items,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}

func (s *OrderService) notify(n models.Notification) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()
	s.store.AddNotification(n)
	util.NotificationsCreatedTotal.WithLabelValues(n.Type).Inc()
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInvalidTransition):
		return "invalid_transition"
	}
	return "error"
}
