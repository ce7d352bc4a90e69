package service

import (
	"fmt"

	"campus-market/internal/models"
	"campus-market/internal/state"
	"campus-market/internal/util"

	"go.uber.org/zap"
)

// IdentityService reconciles the two business identity spaces: seeded
// marketplace businesses and user-created vendor businesses. Views that
// accept an id from either space resolve it here.
type IdentityService struct {
	store  *state.Store
	logger *zap.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(store *state.Store) *IdentityService {
	return &IdentityService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ResolveBusiness returns the vendor business for an id from either space.
// Vendor records win; a marketplace id yields a derived projection that is
// never persisted.
func (s *IdentityService) ResolveBusiness(id string) (models.VendorBusiness, error) {
	if vb, ok := s.store.VendorBusinessByID(id); ok {
		return vb, nil
	}
	if mb, ok := s.store.BusinessByID(id); ok {
		return projectBusiness(mb), nil
	}
	return models.VendorBusiness{}, fmt.Errorf("business %s: %w", id, models.ErrNotFound)
}

// projectBusiness synthesizes a vendor-business-shaped view of a seeded
// marketplace business.
func projectBusiness(b models.Business) models.VendorBusiness {
	category := ""
	if len(b.Categories) > 0 {
		category = b.Categories[0]
	}
	return models.VendorBusiness{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Logo:        b.Logo,
		Category:    category,
		Tags:        b.Categories,
		Delivery:    b.Delivery,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		IsActive:    true,
	}
}

// AcceptableIDs returns the set of business ids that may refer to the same
// storefront as the given id, for filtering orders and products recorded
// under either identity space. The explicit LinkedBusinessID foreign key is
// authoritative; exact name match remains only as a fallback for vendor
// records created before linking existed.
func (s *IdentityService) AcceptableIDs(id string) []string {
	ids := []string{id}

	if vb, ok := s.store.VendorBusinessByID(id); ok {
		if vb.LinkedBusinessID != "" {
			return append(ids, vb.LinkedBusinessID)
		}
		if mb, ok := s.store.BusinessByName(vb.Name); ok {
			s.logger.Debug("Falling back to name-based business linkage",
				zap.String("vendor_business_id", id),
				zap.String("marketplace_id", mb.ID))
			return append(ids, mb.ID)
		}
		return ids
	}

	// Marketplace id: include the vendor business that claimed it, if any.
	if vb, ok := s.store.VendorBusinessByLink(id); ok {
		ids = append(ids, vb.ID)
	}
	return ids
}

// ClaimBusiness records the persisted foreign key from a vendor business to
// the marketplace business it claims. Both sides must exist.
func (s *IdentityService) ClaimBusiness(vendorID, marketplaceID string) error {
	if _, ok := s.store.VendorBusinessByID(vendorID); !ok {
		return fmt.Errorf("vendor business %s: %w", vendorID, models.ErrNotFound)
	}
	if _, ok := s.store.BusinessByID(marketplaceID); !ok {
		return fmt.Errorf("marketplace business %s: %w", marketplaceID, models.ErrNotFound)
	}
	s.store.LinkVendorBusiness(vendorID, marketplaceID)
	s.logger.Info("Vendor business linked to marketplace business",
		zap.String("vendor_business_id", vendorID),
		zap.String("marketplace_id", marketplaceID))
	return nil
}

// DeliveryAvailable reports whether the business behind an id (from either
// space) offers delivery. Unknown businesses do not deliver.
func (s *IdentityService) DeliveryAvailable(businessID string) bool {
	vb, err := s.ResolveBusiness(businessID)
	if err != nil {
		return false
	}
	return vb.Delivery.Available
}
