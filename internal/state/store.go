package state

import (
	"sync"
	"time"

	"campus-market/internal/models"
	"campus-market/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppState is the single persisted session blob. Everything in it is
// session-scoped and wiped on logout; seeded catalog fixtures live outside
// it and are never persisted.
type AppState struct {
	User            *models.User              `json:"user,omitempty"`
	IsAuthenticated bool                      `json:"is_authenticated"`
	Cart            []models.CartItem         `json:"cart"`
	Orders          []models.Order            `json:"orders"`
	Favorites       []models.Business         `json:"favorites"`
	Reviews         []models.Review           `json:"reviews"`
	Conversations   []models.ChatConversation `json:"conversations"`
	Notifications   []models.Notification     `json:"notifications"`
	UserBusinesses  []models.VendorBusiness   `json:"user_businesses"`
	VendorProducts  []models.Product          `json:"vendor_products"`
	VendorOrders    []models.VendorOrder      `json:"vendor_orders"`
	Onboarding      models.OnboardingData     `json:"onboarding"`
}

// Store is the single source of truth for session and commerce state.
// All mutations go through named operations; none of them can fail in the
// domain sense, and updates against unknown ids are no-ops.
type Store struct {
	mu sync.RWMutex

	state AppState

	// seeded marketplace fixtures, loaded at startup, never persisted
	businesses []models.Business
	products   []models.Product

	dirty  chan struct{}
	logger *zap.Logger
}

// New creates an empty store.
func New() *Store {
	return &Store{
		state:  pristine(),
		dirty:  make(chan struct{}, 1),
		logger: util.GetLogger(),
	}
}

func pristine() AppState {
	return AppState{
		Cart:           []models.CartItem{},
		Orders:         []models.Order{},
		Favorites:      []models.Business{},
		Reviews:        []models.Review{},
		Conversations:  []models.ChatConversation{},
		Notifications:  []models.Notification{},
		UserBusinesses: []models.VendorBusiness{},
		VendorProducts: []models.Product{},
		VendorOrders:   []models.VendorOrder{},
		Onboarding:     models.OnboardingData{},
	}
}

// markDirty signals the snapshot writer without blocking the mutation path.
func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Dirty exposes the change signal consumed by the snapshot writer worker.
func (s *Store) Dirty() <-chan struct{} {
	return s.dirty
}

// Login sets the session user and marks the session authenticated.
// Authentication is simulated: the profile is accepted as given.
func (s *Store) Login(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	u := user
	s.state.User = &u
	s.state.IsAuthenticated = true

	s.logger.Info("Session started", zap.String("user_id", user.ID))
	s.markDirty()
	return user
}

// Logout resets all session-scoped state to its pristine initial shape.
// This is a full wipe in one transition, not scattered per-collection resets.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = pristine()
	s.logger.Info("Session ended, state wiped")
	s.markDirty()
}

// CurrentUser returns the session user, or false when anonymous.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.User == nil {
		return models.User{}, false
	}
	return *s.state.User, true
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Snapshot returns a deep-enough copy of the persisted blob for
// serialization. Copies are never nil so empty collections serialize as
// [] rather than null. Callers must not mutate the returned slices.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Cart = append(make([]models.CartItem, 0, len(s.state.Cart)), s.state.Cart...)
	snap.Orders = append(make([]models.Order, 0, len(s.state.Orders)), s.state.Orders...)
	snap.Favorites = append(make([]models.Business, 0, len(s.state.Favorites)), s.state.Favorites...)
	snap.Reviews = append(make([]models.Review, 0, len(s.state.Reviews)), s.state.Reviews...)
	snap.Conversations = append(make([]models.ChatConversation, 0, len(s.state.Conversations)), s.state.Conversations...)
	snap.Notifications = append(make([]models.Notification, 0, len(s.state.Notifications)), s.state.Notifications...)
	snap.UserBusinesses = append(make([]models.VendorBusiness, 0, len(s.state.UserBusinesses)), s.state.UserBusinesses...)
	snap.VendorProducts = append(make([]models.Product, 0, len(s.state.VendorProducts)), s.state.VendorProducts...)
	snap.VendorOrders = append(make([]models.VendorOrder, 0, len(s.state.VendorOrders)), s.state.VendorOrders...)
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

// Restore replaces the session state with a previously persisted blob.
// Nil collections are normalized back to empty so operations stay total.
func (s *Store) Restore(snap AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := pristine()
	if snap.Cart == nil {
		snap.Cart = base.Cart
	}
	if snap.Orders == nil {
		snap.Orders = base.Orders
	}
	if snap.Favorites == nil {
		snap.Favorites = base.Favorites
	}
	if snap.Reviews == nil {
		snap.Reviews = base.Reviews
	}
	if snap.Conversations == nil {
		snap.Conversations = base.Conversations
	}
	if snap.Notifications == nil {
		snap.Notifications = base.Notifications
	}
	if snap.UserBusinesses == nil {
		snap.UserBusinesses = base.UserBusinesses
	}
	if snap.VendorProducts == nil {
		snap.VendorProducts = base.VendorProducts
	}
	if snap.VendorOrders == nil {
		snap.VendorOrders = base.VendorOrders
	}
	s.state = snap
	s.logger.Info("State restored from snapshot",
		zap.Bool("authenticated", snap.IsAuthenticated),
		zap.Int("orders", len(snap.Orders)))
}

func now() time.Time {
	return time.Now().UTC()
}
