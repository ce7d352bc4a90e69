package models

// Order statuses, in lifecycle order. Cancelled sits outside the chain and
// is reachable only from pending.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// statusRank orders the chain for monotonicity checks. Cancelled is not
// ranked; it is handled as an explicit jump from pending.
var statusRank = map[string]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusReady:          3,
	StatusOutForDelivery: 4,
	StatusDelivered:      5,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// StatusRank returns the position of s in the lifecycle chain and whether
// s is part of the chain at all (cancelled is not).
func StatusRank(s string) (int, bool) {
	r, ok := statusRank[s]
	return r, ok
}

// CanTransition reports whether an order may move from one status to the
// next. The chain is strictly forward; pending may instead jump to
// cancelled. out_for_delivery is only reachable when the owning business
// delivers; a business without delivery goes ready -> delivered directly.
func CanTransition(from, to string, deliveryAvailable bool) bool {
	if from == to {
		return false
	}
	if to == StatusCancelled {
		return from == StatusPending
	}
	fromRank, ok := StatusRank(from)
	if !ok {
		return false
	}
	toRank, ok := StatusRank(to)
	if !ok {
		return false
	}
	if toRank <= fromRank {
		return false
	}
	if to == StatusOutForDelivery && !deliveryAvailable {
		return false
	}
	return true
}

// NextStatus returns the natural successor of from for a business with
// the given delivery availability, or "" when from is terminal.
func NextStatus(from string, deliveryAvailable bool) string {
	switch from {
	case StatusPending:
		return StatusConfirmed
	case StatusConfirmed:
		return StatusPreparing
	case StatusPreparing:
		return StatusReady
	case StatusReady:
		if deliveryAvailable {
			return StatusOutForDelivery
		}
		return StatusDelivered
	case StatusOutForDelivery:
		return StatusDelivered
	}
	return ""
}

// StatusMessage renders the human-readable tracking message for a status.
func StatusMessage(status string) string {
	switch status {
	case StatusPending:
		return "Order placed and awaiting confirmation"
	case StatusConfirmed:
		return "Order confirmed by the seller"
	case StatusPreparing:
		return "Your order is being prepared"
	case StatusReady:
		return "Your order is ready"
	case StatusOutForDelivery:
		return "Your order is out for delivery"
	case StatusDelivered:
		return "Your order has been delivered"
	case StatusCancelled:
		return "Your order has been cancelled"
	}
	return "Order status updated"
}
