package models

import "time"

// User represents the authenticated buyer/vendor profile.
// Login is simulated: the profile is accepted as-is, no credential check.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IndexNumber string `json:"index_number"`
	Programme   string `json:"programme"`
	Year        int    `json:"year"`
	Hall        string `json:"hall,omitempty"`
}

// CartItem is one line in the buyer's cart. Lines are identified by the
// (ProductID, SelectedSize, SelectedColor) triple; adding an item whose
// triple already exists merges quantities instead of appending a row.
type CartItem struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
	Price         int64  `json:"price"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	BusinessName  string `json:"business_name,omitempty"`
}

// Key returns the merge identity of a cart line.
func (ci CartItem) Key() CartKey {
	return CartKey{ProductID: ci.ProductID, Size: ci.SelectedSize, Color: ci.SelectedColor}
}

// CartKey is the composite identity of a cart line.
type CartKey struct {
	ProductID string
	Size      string
	Color     string
}

// DeliveryInfo is the campus drop-off captured at checkout.
type DeliveryInfo struct {
	Hall     string `json:"hall"`
	Room     string `json:"room"`
	Landmark string `json:"landmark,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// OrderUpdate is one immutable entry in a buyer order's tracking log.
// Entries are append-only and displayed chronologically ascending.
type OrderUpdate struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Order is the buyer-facing view of a purchase.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Items           []CartItem    `json:"items"`
	Total           int64         `json:"total"`
	Status          string        `json:"status"`
	Delivery        DeliveryInfo  `json:"delivery"`
	PaymentMethod   string        `json:"payment_method"`
	TrackingUpdates []OrderUpdate `json:"tracking_updates,omitempty"`
	CanReview       bool          `json:"can_review"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// VendorOrder is the seller-facing view of the same purchase, keyed by
// business and customer. BuyerOrderID is the explicit linkage back to the
// buyer Order, captured at creation; when empty, status mirroring is skipped.
type VendorOrder struct {
	ID            string       `json:"id"`
	BusinessID    string       `json:"business_id"`
	BuyerOrderID  string       `json:"buyer_order_id,omitempty"`
	CustomerID    string       `json:"customer_id"`
	CustomerName  string       `json:"customer_name"`
	Items         []CartItem   `json:"items"`
	Total         int64        `json:"total"`
	Status        string       `json:"status"`
	Delivery      DeliveryInfo `json:"delivery"`
	PaymentMethod string       `json:"payment_method"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ContactInfo is a vendor business's campus contact details.
type ContactInfo struct {
	Hall     string `json:"hall"`
	Room     string `json:"room"`
	Landmark string `json:"landmark,omitempty"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// DeliveryOptions describes whether and how a business delivers.
type DeliveryOptions struct {
	Available bool     `json:"available"`
	Fee       int64    `json:"fee"`
	Coverage  []string `json:"coverage,omitempty"`
}

// VendorBusiness is a storefront created by a user through onboarding.
// LinkedBusinessID is the persisted foreign key to a claimed marketplace
// business; when empty the record predates explicit linking and name
// matching is used as a fallback.
type VendorBusiness struct {
	ID               string          `json:"id"`
	OwnerID          string          `json:"owner_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Logo             string          `json:"logo,omitempty"`
	BusinessType     string          `json:"business_type"`
	Category         string          `json:"category"`
	Tags             []string        `json:"tags,omitempty"`
	Contact          ContactInfo     `json:"contact"`
	Delivery         DeliveryOptions `json:"delivery"`
	LinkedBusinessID string          `json:"linked_business_id,omitempty"`
	ProductCount     int             `json:"product_count"`
	Rating           float64         `json:"rating"`
	ReviewCount      int             `json:"review_count"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Business is a pre-seeded marketplace storefront. Its id space is disjoint
// from VendorBusiness; views that accept either id go through the
// reconciliation service.
type Business struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Logo        string          `json:"logo,omitempty"`
	Location    string          `json:"location,omitempty"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Categories  []string        `json:"categories,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Delivery    DeliveryOptions `json:"delivery"`
}

// ProductOptions holds selectable variants for a product.
type ProductOptions struct {
	Sizes  []string `json:"sizes,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Product is a catalog item, seeded or vendor-created.
type Product struct {
	ID          string         `json:"id"`
	BusinessID  string         `json:"business_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Price       int64          `json:"price"`
	Images      []string       `json:"images,omitempty"`
	Category    string         `json:"category,omitempty"`
	Stock       int            `json:"stock"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	Options     ProductOptions `json:"options"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Review is a buyer's rating of a product, business, or order.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	ProductID  string    `json:"product_id,omitempty"`
	BusinessID string    `json:"business_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Verified   bool      `json:"verified"`
	Helpful    int       `json:"helpful"`
	Images     []string  `json:"images,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatMessage is one message within a conversation.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderType string    `json:"sender_type"`
	Text       string    `json:"text"`
	Read       bool      `json:"read"`
	SentAt     time.Time `json:"sent_at"`
}

// ChatConversation groups messages between a buyer and a business.
type ChatConversation struct {
	ID          string        `json:"id"`
	BusinessID  string        `json:"business_id"`
	BuyerID     string        `json:"buyer_id"`
	SellerID    string        `json:"seller_id,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	LastMessage string        `json:"last_message,omitempty"`
	UnreadCount int           `json:"unread_count"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Notification is an in-app alert addressed to one user.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	ActionURL  string    `json:"action_url,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	BusinessID string    `json:"business_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// OnboardingInfo is the "info" step of the onboarding draft.
type OnboardingInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Logo        string   `json:"logo,omitempty"`
}

// OnboardingData is the transient draft assembled across the four wizard
// steps. It never appears in the persisted business collection; only a
// committed draft materializes a VendorBusiness.
type OnboardingData struct {
	BusinessType string          `json:"business_type,omitempty"`
	BusinessInfo OnboardingInfo  `json:"business_info"`
	ContactInfo  ContactInfo     `json:"contact_info"`
	Delivery     DeliveryOptions `json:"delivery"`
}

// Sender types for chat messages
const (
	SenderBuyer  = "buyer"
	SenderSeller = "seller"
)

// Business types offered during onboarding
const (
	BusinessTypeGoods    = "goods"
	BusinessTypeServices = "services"
	BusinessTypeBoth     = "both"
)

// Notification types
const (
	NotificationOrderUpdate = "order_update"
	NotificationMessage     = "message"
	NotificationReview      = "review"
	NotificationSystem      = "system"
)
