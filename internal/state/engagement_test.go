package state

import (
	"testing"
	"time"

	"campus-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	s := New()
	b := models.Business{ID: "b1", Name: "Katanga Grill"}

	assert.True(t, s.ToggleFavorite(b))
	assert.True(t, s.IsFavorite("b1"))

	assert.False(t, s.ToggleFavorite(b))
	assert.False(t, s.IsFavorite("b1"))
	assert.Empty(t, s.Favorites())
}

func TestAddReviewPrepends(t *testing.T) {
	s := New()

	s.AddReview(models.Review{ID: "r1", ProductID: "p1", Rating: 4, Comment: "good"})
	s.AddReview(models.Review{ID: "r2", ProductID: "p1", Rating: 5, Comment: "better"})

	reviews := s.ReviewsForProduct("p1")
	require.Len(t, reviews, 2)
	assert.Equal(t, "r2", reviews[0].ID)
}

func TestNotificationReadFlags(t *testing.T) {
	s := New()

	s.AddNotification(models.Notification{ID: "n1", UserID: "u1"})
	s.AddNotification(models.Notification{ID: "n2", UserID: "u1"})
	s.AddNotification(models.Notification{ID: "n3", UserID: "u2"})

	assert.Equal(t, 2, s.UnreadNotifications("u1"))

	s.MarkNotificationRead("n1")
	assert.Equal(t, 1, s.UnreadNotifications("u1"))

	// Unknown id is a no-op.
	s.MarkNotificationRead("missing")
	assert.Equal(t, 1, s.UnreadNotifications("u1"))

	s.MarkAllNotificationsRead("u1")
	assert.Zero(t, s.UnreadNotifications("u1"))
	assert.Equal(t, 1, s.UnreadNotifications("u2"))
}

func TestConversationLifecycle(t *testing.T) {
	s := New()

	conv := s.GetOrCreateConversation("b1", "u1")
	require.NotEmpty(t, conv.ID)

	// Second call returns the same conversation.
	again := s.GetOrCreateConversation("b1", "u1")
	assert.Equal(t, conv.ID, again.ID)

	s.AppendMessage(conv.ID, models.ChatMessage{
		ID:         "m1",
		SenderType: models.SenderBuyer,
		Text:       "Is the jacket still available?",
		SentAt:     time.Now().UTC(),
	})
	s.AppendMessage(conv.ID, models.ChatMessage{
		ID:         "m2",
		SenderType: models.SenderSeller,
		Text:       "Yes, size L only.",
		SentAt:     time.Now().UTC(),
	})

	got, ok := s.ConversationByID(conv.ID)
	require.True(t, ok)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, "Yes, size L only.", got.LastMessage)
	// Only the seller's reply counts toward the buyer's unread badge.
	assert.Equal(t, 1, got.UnreadCount)

	s.MarkConversationRead(conv.ID)
	got, _ = s.ConversationByID(conv.ID)
	assert.Zero(t, got.UnreadCount)
	for _, m := range got.Messages {
		assert.True(t, m.Read)
	}
}

func TestMergeOnboardingShallowMerge(t *testing.T) {
	s := New()

	bt := models.BusinessTypeGoods
	s.MergeOnboarding(OnboardingPatch{BusinessType: &bt})

	info := models.OnboardingInfo{Name: "Night Bites", Description: "Late snacks", Category: "food"}
	s.MergeOnboarding(OnboardingPatch{BusinessInfo: &info})

	draft := s.Onboarding()
	assert.Equal(t, models.BusinessTypeGoods, draft.BusinessType)
	assert.Equal(t, "Night Bites", draft.BusinessInfo.Name)

	// A later patch replaces the whole section, not individual fields.
	s.MergeOnboarding(OnboardingPatch{BusinessInfo: &models.OnboardingInfo{Name: "Day Bites"}})
	draft = s.Onboarding()
	assert.Equal(t, "Day Bites", draft.BusinessInfo.Name)
	assert.Empty(t, draft.BusinessInfo.Description)
	assert.Equal(t, models.BusinessTypeGoods, draft.BusinessType)

	s.ResetOnboarding()
	assert.Equal(t, models.OnboardingData{}, s.Onboarding())
}
