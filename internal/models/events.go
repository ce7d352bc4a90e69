package models

import "time"

// Event types published on the marketplace event stream
const (
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeBusinessCreated    = "BUSINESS_CREATED"
	EventTypeReviewSubmitted    = "REVIEW_SUBMITTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent is published once per vendor order at checkout. The
// seller-notification worker consumes it to alert the business owner.
type OrderPlacedEvent struct {
	BaseEvent
	VendorOrderID string     `json:"vendor_order_id"`
	BuyerOrderID  string     `json:"buyer_order_id"`
	BusinessID    string     `json:"business_id"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	Total         int64      `json:"total"`
	Items         []CartItem `json:"items"`
}

// OrderStatusChangedEvent is published on every lifecycle transition.
type OrderStatusChangedEvent struct {
	BaseEvent
	VendorOrderID string `json:"vendor_order_id"`
	BuyerOrderID  string `json:"buyer_order_id,omitempty"`
	BusinessID    string `json:"business_id"`
	FromStatus    string `json:"from_status"`
	ToStatus      string `json:"to_status"`
}

// BusinessCreatedEvent is published when onboarding commits a new storefront.
type BusinessCreatedEvent struct {
	BaseEvent
	BusinessID   string `json:"business_id"`
	OwnerID      string `json:"owner_id"`
	Name         string `json:"name"`
	BusinessType string `json:"business_type"`
	Category     string `json:"category"`
}

// ReviewSubmittedEvent is published when a buyer submits a review.
type ReviewSubmittedEvent struct {
	BaseEvent
	ReviewID   string `json:"review_id"`
	UserID     string `json:"user_id"`
	ProductID  string `json:"product_id,omitempty"`
	BusinessID string `json:"business_id,omitempty"`
	Rating     int    `json:"rating"`
}
