package state

import (
	"campus-market/internal/models"
)

// OnboardingPatch carries partial updates written by one wizard step.
// Merging is shallow at the top-level key: a non-nil field replaces the
// whole section, nil fields leave the draft untouched.
type OnboardingPatch struct {
	BusinessType *string
	BusinessInfo *models.OnboardingInfo
	ContactInfo  *models.ContactInfo
	Delivery     *models.DeliveryOptions
}

// MergeOnboarding applies a step patch into the shared draft.
func (s *Store) MergeOnboarding(patch OnboardingPatch) models.OnboardingData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.BusinessType != nil {
		s.state.Onboarding.BusinessType = *patch.BusinessType
	}
	if patch.BusinessInfo != nil {
		s.state.Onboarding.BusinessInfo = *patch.BusinessInfo
	}
	if patch.ContactInfo != nil {
		s.state.Onboarding.ContactInfo = *patch.ContactInfo
	}
	if patch.Delivery != nil {
		s.state.Onboarding.Delivery = *patch.Delivery
	}
	s.markDirty()
	return s.state.Onboarding
}

// Onboarding returns the current draft.
func (s *Store) Onboarding() models.OnboardingData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Onboarding
}

// ResetOnboarding clears the draft back to its empty shape, on completion
// or restart.
func (s *Store) ResetOnboarding() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Onboarding = models.OnboardingData{}
	s.markDirty()
}
