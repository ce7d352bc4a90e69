package service

import (
	"context"
	"testing"

	"campus-market/internal/models"
	"campus-market/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewValidation(t *testing.T) {
	s := state.New()
	svc := NewEngagementService(s, nil)
	s.Login(models.User{Name: "Ama"})

	_, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{Rating: 0, Comment: "meh"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.SubmitReview(context.Background(), &SubmitReviewRequest{Rating: 6, Comment: "wow"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.SubmitReview(context.Background(), &SubmitReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSubmitReviewMarksOrderReviewsVerified(t *testing.T) {
	s := state.New()
	svc := NewEngagementService(s, nil)
	user := s.Login(models.User{Name: "Ama"})

	verified, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		ProductID: "p1", OrderID: "ord-1", Rating: 5, Comment: "Arrived hot",
	})
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Equal(t, user.ID, verified.UserID)

	plain, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{
		ProductID: "p1", Rating: 3, Comment: "Average",
	})
	require.NoError(t, err)
	assert.False(t, plain.Verified)

	assert.Len(t, s.ReviewsForProduct("p1"), 2)
}

func TestSubmitReviewRequiresSession(t *testing.T) {
	s := state.New()
	svc := NewEngagementService(s, nil)

	_, err := svc.SubmitReview(context.Background(), &SubmitReviewRequest{Rating: 5, Comment: "Great"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSendMessageCreatesConversation(t *testing.T) {
	s := state.New()
	svc := NewEngagementService(s, nil)
	buyer := s.Login(models.User{Name: "Ama"})

	conv, err := svc.SendMessage("biz-1", buyer.ID, models.SenderBuyer, "Is the jacket still available?")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", conv.BusinessID)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "Is the jacket still available?", conv.LastMessage)

	// Second message reuses the conversation.
	conv2, err := svc.SendMessage("biz-1", buyer.ID, models.SenderBuyer, "Hello?")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, conv2.ID)
	assert.Len(t, conv2.Messages, 2)

	// Buyer-sent messages do not notify the buyer or inflate their badge.
	assert.Empty(t, s.Notifications(buyer.ID))
	assert.Zero(t, conv2.UnreadCount)
}

func TestSellerReplyNotifiesBuyer(t *testing.T) {
	s := state.New()
	svc := NewEngagementService(s, nil)
	buyer := s.Login(models.User{Name: "Ama"})

	conv, err := svc.SendMessage("biz-1", buyer.ID, models.SenderSeller, "Yes, still in stock")
	require.NoError(t, err)
	assert.Positive(t, conv.UnreadCount)

	notifications := s.Notifications(buyer.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationMessage, notifications[0].Type)

	svc.MarkConversationRead(conv.ID)
	conv, ok := s.ConversationByID(conv.ID)
	require.True(t, ok)
	assert.Zero(t, conv.UnreadCount)
}

func TestSendMessageValidation(t *testing.T) {
	svc := NewEngagementService(state.New(), nil)

	_, err := svc.SendMessage("biz-1", "u1", models.SenderBuyer, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.SendMessage("biz-1", "u1", "robot", "hi")
	assert.ErrorIs(t, err, models.ErrValidation)
}
