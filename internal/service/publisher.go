package service

import (
	"context"

	"campus-market/internal/models"
)

// EventPublisher is the outbound integration-event sink. Publishing is
// best-effort everywhere: failures are logged, never surfaced to callers.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishBusinessCreated(ctx context.Context, event *models.BusinessCreatedEvent) error
	PublishReviewSubmitted(ctx context.Context, event *models.ReviewSubmittedEvent) error
}
