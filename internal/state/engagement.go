package state

import (
	"campus-market/internal/models"

	"github.com/google/uuid"
)

// ToggleFavorite adds the business to favorites when absent and removes it
// when present, keyed by business id. Returns true when the business was
// added. The operation is its own inverse.
func (s *Store) ToggleFavorite(b models.Business) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Favorites {
		if s.state.Favorites[i].ID == b.ID {
			s.state.Favorites = append(s.state.Favorites[:i], s.state.Favorites[i+1:]...)
			s.markDirty()
			return false
		}
	}
	s.state.Favorites = append(s.state.Favorites, b)
	s.markDirty()
	return true
}

// Favorites returns the favorited businesses.
func (s *Store) Favorites() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.Business, 0, len(s.state.Favorites)), s.state.Favorites...)
}

// IsFavorite reports whether a business id is favorited.
func (s *Store) IsFavorite(businessID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.state.Favorites {
		if b.ID == businessID {
			return true
		}
	}
	return false
}

// AddReview prepends a review. No dedup: the same user may review again.
func (s *Store) AddReview(r models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Reviews = append([]models.Review{r}, s.state.Reviews...)
	s.markDirty()
}

// ReviewsForProduct returns reviews for a product, newest first.
func (s *Store) ReviewsForProduct(productID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, r := range s.state.Reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// ReviewsForBusiness returns reviews for a business, newest first.
func (s *Store) ReviewsForBusiness(businessID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, r := range s.state.Reviews {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	return out
}

// AddNotification prepends a notification.
func (s *Store) AddNotification(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Notifications = append([]models.Notification{n}, s.state.Notifications...)
	s.markDirty()
}

// Notifications returns the notifications addressed to a user.
func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, 0)
	for _, n := range s.state.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationRead flags one notification read. Unknown ids are a no-op.
func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notifications {
		if s.state.Notifications[i].ID == id {
			s.state.Notifications[i].Read = true
			s.markDirty()
			return
		}
	}
}

// MarkAllNotificationsRead flags every notification for a user read.
func (s *Store) MarkAllNotificationsRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Notifications {
		if s.state.Notifications[i].UserID == userID {
			s.state.Notifications[i].Read = true
		}
	}
	s.markDirty()
}

// UnreadNotifications counts unread notifications for a user.
func (s *Store) UnreadNotifications(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.state.Notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}

// GetOrCreateConversation returns the conversation between a buyer and a
// business, creating an empty one on first contact.
func (s *Store) GetOrCreateConversation(businessID, buyerID string) models.ChatConversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.state.Conversations {
		if c.BusinessID == businessID && c.BuyerID == buyerID {
			return c
		}
	}
	conv := models.ChatConversation{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		BuyerID:    buyerID,
		Messages:   []models.ChatMessage{},
		UpdatedAt:  now(),
	}
	s.state.Conversations = append(s.state.Conversations, conv)
	s.markDirty()
	return conv
}

// AppendMessage appends a message to a conversation and refreshes the
// last-message preview. The unread count is the buyer's badge, so only
// seller messages bump it; a buyer's own messages never do.
// Unknown conversations are a no-op.
func (s *Store) AppendMessage(conversationID string, msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == conversationID {
			c := &s.state.Conversations[i]
			c.Messages = append(c.Messages, msg)
			c.LastMessage = msg.Text
			if msg.SenderType == models.SenderSeller {
				c.UnreadCount++
			}
			c.UpdatedAt = msg.SentAt
			s.markDirty()
			return
		}
	}
}

// MarkConversationRead resets the unread count and flags every message read.
func (s *Store) MarkConversationRead(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == conversationID {
			c := &s.state.Conversations[i]
			c.UnreadCount = 0
			for j := range c.Messages {
				c.Messages[j].Read = true
			}
			s.markDirty()
			return
		}
	}
}

// ConversationByID looks up a conversation.
func (s *Store) ConversationByID(id string) (models.ChatConversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.state.Conversations {
		if c.ID == id {
			return c, true
		}
	}
	return models.ChatConversation{}, false
}

// Conversations returns the conversations a buyer participates in.
func (s *Store) Conversations(buyerID string) []models.ChatConversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatConversation, 0)
	for _, c := range s.state.Conversations {
		if c.BuyerID == buyerID {
			out = append(out, c)
		}
	}
	return out
}
