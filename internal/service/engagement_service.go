package service

import (
	"context"
	"fmt"
	"time"

	"campus-market/internal/models"
	"campus-market/internal/state"
	"campus-market/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EngagementService covers reviews, chat, and favorites: thin orchestration
// over the state store with the minimal validation the forms used to carry.
type EngagementService struct {
	store     *state.Store
	publisher EventPublisher
	logger    *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(store *state.Store, publisher EventPublisher) *EngagementService {
	return &EngagementService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// SubmitReviewRequest carries the review form.
type SubmitReviewRequest struct {
	ProductID  string   `json:"product_id,omitempty"`
	BusinessID string   `json:"business_id,omitempty"`
	OrderID    string   `json:"order_id,omitempty"`
	Rating     int      `json:"rating" binding:"required"`
	Comment    string   `json:"comment" binding:"required"`
	Images     []string `json:"images,omitempty"`
}

// SubmitReview validates and records a review. Rating must be 1-5 and the
// comment non-empty; a review tied to an order is marked verified.
func (s *EngagementService) SubmitReview(ctx context.Context, req *SubmitReviewRequest) (models.Review, error) {
	ctx, span := util.StartSpan(ctx, "EngagementService.SubmitReview")
	defer span.End()

	user, ok := s.store.CurrentUser()
	if !ok {
		return models.Review{}, fmt.Errorf("no active session: %w", models.ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return models.Review{}, fmt.Errorf("rating must be between 1 and 5: %w", models.ErrValidation)
	}
	if req.Comment == "" {
		return models.Review{}, fmt.Errorf("comment is required: %w", models.ErrValidation)
	}

	review := models.Review{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		UserName:   user.Name,
		ProductID:  req.ProductID,
		BusinessID: req.BusinessID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Verified:   req.OrderID != "",
		Images:     req.Images,
		CreatedAt:  time.Now().UTC(),
	}
	s.store.AddReview(review)
	util.ReviewsSubmittedTotal.Inc()

	if s.publisher != nil {
		event := &models.ReviewSubmittedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeReviewSubmitted,
				Timestamp: review.CreatedAt,
			},
			ReviewID:   review.ID,
			UserID:     review.UserID,
			ProductID:  review.ProductID,
			BusinessID: review.BusinessID,
			Rating:     review.Rating,
		}
		if err := s.publisher.PublishReviewSubmitted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ReviewSubmitted event", zap.Error(err))
		}
	}

	return review, nil
}

// SendMessage appends a chat message to the conversation between a buyer
// and a business, creating the conversation on first contact. The recipient
// gets a message notification.
func (s *EngagementService) SendMessage(businessID, buyerID, senderType, text string) (models.ChatConversation, error) {
	if text == "" {
		return models.ChatConversation{}, fmt.Errorf("message text is required: %w", models.ErrValidation)
	}
	if senderType != models.SenderBuyer && senderType != models.SenderSeller {
		return models.ChatConversation{}, fmt.Errorf("unknown sender type %q: %w", senderType, models.ErrValidation)
	}

	conv := s.store.GetOrCreateConversation(businessID, buyerID)
	msg := models.ChatMessage{
		ID:         uuid.New().String(),
		SenderType: senderType,
		Text:       text,
		SentAt:     time.Now().UTC(),
	}
	s.store.AppendMessage(conv.ID, msg)

	// Buyer-to-seller notifications are delivered through the vendor
	// dashboard; only buyer recipients get an in-app notification here.
	if senderType == models.SenderSeller {
		notification := models.Notification{
			ID:         uuid.New().String(),
			UserID:     buyerID,
			Type:       models.NotificationMessage,
			Title:      "New message",
			Message:    text,
			BusinessID: businessID,
			CreatedAt:  msg.SentAt,
		}
		s.store.AddNotification(notification)
		util.NotificationsCreatedTotal.WithLabelValues(notification.Type).Inc()
	}

	conv, _ = s.store.ConversationByID(conv.ID)
	return conv, nil
}

// MarkConversationRead resets the unread count of a conversation.
func (s *EngagementService) MarkConversationRead(conversationID string) {
	s.store.MarkConversationRead(conversationID)
}
