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

// Onboarding wizard steps, in order. No step may be applied before the
// previous ones are complete.
const (
	StepType    = "type"
	StepInfo    = "info"
	StepContact = "contact"
	StepPreview = "preview"
)

// OnboardingService accumulates the multi-step business-creation form into
// a single draft and materializes it into a vendor business on commit.
// Unlike the form layer, the assembler enforces its own step ordering and
// required fields, so an incomplete draft can never be committed directly.
type OnboardingService struct {
	store     *state.Store
	publisher EventPublisher
	logger    *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(store *state.Store, publisher EventPublisher) *OnboardingService {
	return &OnboardingService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// SetBusinessType applies the first wizard step.
func (s *OnboardingService) SetBusinessType(businessType string) error {
	switch businessType {
	case models.BusinessTypeGoods, models.BusinessTypeServices, models.BusinessTypeBoth:
	default:
		util.OnboardingRejectedTotal.WithLabelValues(StepType).Inc()
		return fmt.Errorf("unknown business type %q: %w", businessType, models.ErrValidation)
	}
	s.store.MergeOnboarding(state.OnboardingPatch{BusinessType: &businessType})
	return nil
}

// SetBusinessInfo applies the second wizard step. Requires the type step.
func (s *OnboardingService) SetBusinessInfo(info models.OnboardingInfo) error {
	draft := s.store.Onboarding()
	if draft.BusinessType == "" {
		util.OnboardingRejectedTotal.WithLabelValues(StepInfo).Inc()
		return fmt.Errorf("business type must be chosen first: %w", models.ErrValidation)
	}
	if info.Name == "" || info.Description == "" || info.Category == "" {
		util.OnboardingRejectedTotal.WithLabelValues(StepInfo).Inc()
		return fmt.Errorf("name, description and category are required: %w", models.ErrValidation)
	}
	s.store.MergeOnboarding(state.OnboardingPatch{BusinessInfo: &info})
	return nil
}

// SetContact applies the third wizard step: contact details plus delivery
// options. Requires the info step.
func (s *OnboardingService) SetContact(contact models.ContactInfo, delivery models.DeliveryOptions) error {
	draft := s.store.Onboarding()
	if draft.BusinessInfo.Name == "" {
		util.OnboardingRejectedTotal.WithLabelValues(StepContact).Inc()
		return fmt.Errorf("business info must be completed first: %w", models.ErrValidation)
	}
	if contact.Hall == "" || contact.Room == "" || contact.Phone == "" {
		util.OnboardingRejectedTotal.WithLabelValues(StepContact).Inc()
		return fmt.Errorf("hall, room and phone are required: %w", models.ErrValidation)
	}
	s.store.MergeOnboarding(state.OnboardingPatch{ContactInfo: &contact, Delivery: &delivery})
	return nil
}

// Draft returns the accumulated draft for the preview step.
func (s *OnboardingService) Draft() models.OnboardingData {
	return s.store.Onboarding()
}

// Restart clears the draft.
func (s *OnboardingService) Restart() {
	s.store.ResetOnboarding()
}

// validateDraft checks the whole draft, independent of how it was
// assembled. Commit never trusts the step gating alone.
func validateDraft(d models.OnboardingData) error {
	switch d.BusinessType {
	case models.BusinessTypeGoods, models.BusinessTypeServices, models.BusinessTypeBoth:
	default:
		return fmt.Errorf("business type missing: %w", models.ErrValidation)
	}
	if d.BusinessInfo.Name == "" || d.BusinessInfo.Description == "" || d.BusinessInfo.Category == "" {
		return fmt.Errorf("business info incomplete: %w", models.ErrValidation)
	}
	if d.ContactInfo.Hall == "" || d.ContactInfo.Room == "" || d.ContactInfo.Phone == "" {
		return fmt.Errorf("contact info incomplete: %w", models.ErrValidation)
	}
	return nil
}

// Commit materializes the draft into a vendor business with zeroed
// counters, appends it to the persisted collection, clears the draft, and
// notifies the owner. Partial drafts are rejected, never materialized.
func (s *OnboardingService) Commit(ctx context.Context) (models.VendorBusiness, error) {
	ctx, span := util.StartSpan(ctx, "OnboardingService.Commit")
	defer span.End()

	user, ok := s.store.CurrentUser()
	if !ok {
		return models.VendorBusiness{}, fmt.Errorf("no active session: %w", models.ErrValidation)
	}

	draft := s.store.Onboarding()
	if err := validateDraft(draft); err != nil {
		util.OnboardingRejectedTotal.WithLabelValues(StepPreview).Inc()
		return models.VendorBusiness{}, err
	}

	ts := time.Now().UTC()
	business := models.VendorBusiness{
		ID:           uuid.New().String(),
		OwnerID:      user.ID,
		Name:         draft.BusinessInfo.Name,
		Description:  draft.BusinessInfo.Description,
		Logo:         draft.BusinessInfo.Logo,
		BusinessType: draft.BusinessType,
		Category:     draft.BusinessInfo.Category,
		Tags:         draft.BusinessInfo.Tags,
		Contact:      draft.ContactInfo,
		Delivery:     draft.Delivery,
		ProductCount: 0,
		Rating:       0,
		ReviewCount:  0,
		IsActive:     true,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	s.store.AddVendorBusiness(business)
	s.store.ResetOnboarding()
	util.OnboardingCommittedTotal.Inc()

	notification := models.Notification{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		Type:       models.NotificationSystem,
		Title:      "Business created",
		Message:    fmt.Sprintf("%s is now live on the marketplace", business.Name),
		BusinessID: business.ID,
		CreatedAt:  ts,
	}
	s.store.AddNotification(notification)
	util.NotificationsCreatedTotal.WithLabelValues(notification.Type).Inc()

	if s.publisher != nil {
		event := &models.BusinessCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeBusinessCreated,
				Timestamp: ts,
			},
			BusinessID:   business.ID,
			OwnerID:      business.OwnerID,
			Name:         business.Name,
			BusinessType: business.BusinessType,
			Category:     business.Category,
		}
		if err := s.publisher.PublishBusinessCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish BusinessCreated event", zap.Error(err))
		}
	}

	s.logger.Info("Vendor business created",
		zap.String("business_id", business.ID),
		zap.String("owner_id", business.OwnerID),
		zap.String("name", business.Name))

	return business, nil
}
