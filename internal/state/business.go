package state

import (
	"campus-market/internal/models"
)

// SeedCatalog loads the marketplace fixtures. Fixtures are read-only and
// never included in the persisted snapshot.
func (s *Store) SeedCatalog(businesses []models.Business, products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.businesses = append([]models.Business(nil), businesses...)
	s.products = append([]models.Product(nil), products...)
}

// Businesses returns the seeded marketplace businesses.
func (s *Store) Businesses() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.Business, 0, len(s.businesses)), s.businesses...)
}

// BusinessByID looks up a seeded marketplace business.
func (s *Store) BusinessByID(id string) (models.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.businesses {
		if b.ID == id {
			return b, true
		}
	}
	return models.Business{}, false
}

// BusinessByName looks up a seeded marketplace business by exact name.
// Used only as the legacy linkage fallback for vendor businesses created
// before explicit linking existed.
func (s *Store) BusinessByName(name string) (models.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.businesses {
		if b.Name == name {
			return b, true
		}
	}
	return models.Business{}, false
}

// AddVendorBusiness appends a user-created storefront.
func (s *Store) AddVendorBusiness(b models.VendorBusiness) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserBusinesses = append(s.state.UserBusinesses, b)
	s.markDirty()
}

// VendorBusinesses returns the storefronts owned by a user.
func (s *Store) VendorBusinesses(ownerID string) []models.VendorBusiness {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VendorBusiness, 0)
	for _, b := range s.state.UserBusinesses {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out
}

// VendorBusinessByID looks up a user-created storefront.
func (s *Store) VendorBusinessByID(id string) (models.VendorBusiness, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.state.UserBusinesses {
		if b.ID == id {
			return b, true
		}
	}
	return models.VendorBusiness{}, false
}

// UpdateVendorBusiness replaces the stored record matching b.ID.
// Unknown ids are a no-op.
func (s *Store) UpdateVendorBusiness(b models.VendorBusiness) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.UserBusinesses {
		if s.state.UserBusinesses[i].ID == b.ID {
			s.state.UserBusinesses[i] = b
			s.markDirty()
			return
		}
	}
}

// LinkVendorBusiness records the explicit foreign key from a vendor
// business to the marketplace business it claims.
func (s *Store) LinkVendorBusiness(vendorID, marketplaceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.UserBusinesses {
		if s.state.UserBusinesses[i].ID == vendorID {
			s.state.UserBusinesses[i].LinkedBusinessID = marketplaceID
			s.state.UserBusinesses[i].UpdatedAt = now()
			s.markDirty()
			return
		}
	}
}

// VendorBusinessByLink returns the vendor business that claimed the given
// marketplace business id, if any.
func (s *Store) VendorBusinessByLink(marketplaceID string) (models.VendorBusiness, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.state.UserBusinesses {
		if b.LinkedBusinessID == marketplaceID {
			return b, true
		}
	}
	return models.VendorBusiness{}, false
}

// AddVendorProduct appends a vendor product and bumps the owning
// storefront's product count.
func (s *Store) AddVendorProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.VendorProducts = append(s.state.VendorProducts, p)
	for i := range s.state.UserBusinesses {
		if s.state.UserBusinesses[i].ID == p.BusinessID {
			s.state.UserBusinesses[i].ProductCount++
			s.state.UserBusinesses[i].UpdatedAt = now()
			break
		}
	}
	s.markDirty()
}

// UpdateVendorProduct replaces the stored product matching p.ID.
func (s *Store) UpdateVendorProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.VendorProducts {
		if s.state.VendorProducts[i].ID == p.ID {
			s.state.VendorProducts[i] = p
			s.markDirty()
			return
		}
	}
}

// RemoveVendorProduct drops a vendor product and decrements the owning
// storefront's product count.
func (s *Store) RemoveVendorProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.state.VendorProducts[:0]
	var removed *models.Product
	for i := range s.state.VendorProducts {
		if s.state.VendorProducts[i].ID == id && removed == nil {
			p := s.state.VendorProducts[i]
			removed = &p
			continue
		}
		kept = append(kept, s.state.VendorProducts[i])
	}
	s.state.VendorProducts = kept

	if removed != nil {
		for i := range s.state.UserBusinesses {
			if s.state.UserBusinesses[i].ID == removed.BusinessID {
				if s.state.UserBusinesses[i].ProductCount > 0 {
					s.state.UserBusinesses[i].ProductCount--
				}
				s.state.UserBusinesses[i].UpdatedAt = now()
				break
			}
		}
	}
	s.markDirty()
}

// Products returns the seeded catalog plus all vendor products.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products)+len(s.state.VendorProducts))
	out = append(out, s.products...)
	out = append(out, s.state.VendorProducts...)
	return out
}

// ProductByID looks up a product across the seeded catalog and vendor
// products.
func (s *Store) ProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range s.state.VendorProducts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductsByBusiness returns products recorded under any of the given
// business ids, seeded and vendor-created alike.
func (s *Store) ProductsByBusiness(businessIDs ...string) []models.Product {
	accept := make(map[string]struct{}, len(businessIDs))
	for _, id := range businessIDs {
		accept[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0)
	for _, p := range s.products {
		if _, ok := accept[p.BusinessID]; ok {
			out = append(out, p)
		}
	}
	for _, p := range s.state.VendorProducts {
		if _, ok := accept[p.BusinessID]; ok {
			out = append(out, p)
		}
	}
	return out
}
