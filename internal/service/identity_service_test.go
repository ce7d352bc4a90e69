package service

import (
	"testing"

	"campus-market/internal/models"
	"campus-market/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIdentityStore() *state.Store {
	s := state.New()
	s.SeedCatalog(
		[]models.Business{
			{ID: "mkt-1", Name: "Katanga Grill", Categories: []string{"food", "grill"}, Delivery: models.DeliveryOptions{Available: true, Fee: 300}, Rating: 4.5, ReviewCount: 12},
			{ID: "mkt-2", Name: "Unity Thrift", Delivery: models.DeliveryOptions{Available: false}},
		},
		nil,
	)
	return s
}

func TestResolveBusinessPrefersVendorRecord(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)

	s.AddVendorBusiness(models.VendorBusiness{ID: "vnd-1", Name: "Katanga Grill", OwnerID: "u1"})

	vb, err := svc.ResolveBusiness("vnd-1")
	require.NoError(t, err)
	assert.Equal(t, "vnd-1", vb.ID)
	assert.Equal(t, "u1", vb.OwnerID)
}

func TestResolveBusinessProjectsMarketplaceRecord(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)

	vb, err := svc.ResolveBusiness("mkt-1")
	require.NoError(t, err)
	assert.Equal(t, "mkt-1", vb.ID)
	assert.Equal(t, "Katanga Grill", vb.Name)
	assert.Equal(t, "food", vb.Category)
	assert.True(t, vb.Delivery.Available)
	assert.Equal(t, 4.5, vb.Rating)
	assert.True(t, vb.IsActive)

	// The projection is derived, never persisted as a vendor record.
	_, ok := s.VendorBusinessByID("mkt-1")
	assert.False(t, ok)
}

func TestResolveBusinessUnknown(t *testing.T) {
	svc := NewIdentityService(seedIdentityStore())

	_, err := svc.ResolveBusiness("ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAcceptableIDsUsesExplicitLink(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)

	s.AddVendorBusiness(models.VendorBusiness{ID: "vnd-1", Name: "Renamed Grill"})
	require.NoError(t, svc.ClaimBusiness("vnd-1", "mkt-1"))

	assert.ElementsMatch(t, []string{"vnd-1", "mkt-1"}, svc.AcceptableIDs("vnd-1"))
	// The link is visible from the marketplace side too.
	assert.ElementsMatch(t, []string{"mkt-1", "vnd-1"}, svc.AcceptableIDs("mkt-1"))
}

func TestAcceptableIDsNameFallback(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)

	// Unlinked vendor record whose name matches a seeded business.
	s.AddVendorBusiness(models.VendorBusiness{ID: "vnd-1", Name: "Katanga Grill"})

	assert.ElementsMatch(t, []string{"vnd-1", "mkt-1"}, svc.AcceptableIDs("vnd-1"))
}

func TestAcceptableIDsNoLinkage(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)

	s.AddVendorBusiness(models.VendorBusiness{ID: "vnd-1", Name: "Brand New Shop"})

	assert.Equal(t, []string{"vnd-1"}, svc.AcceptableIDs("vnd-1"))
	assert.Equal(t, []string{"mkt-2"}, svc.AcceptableIDs("mkt-2"))
}

func TestClaimBusinessValidatesBothSides(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)
	s.AddVendorBusiness(models.VendorBusiness{ID: "vnd-1", Name: "Shop"})

	assert.ErrorIs(t, svc.ClaimBusiness("ghost", "mkt-1"), models.ErrNotFound)
	assert.ErrorIs(t, svc.ClaimBusiness("vnd-1", "ghost"), models.ErrNotFound)
}

func TestDeliveryAvailable(t *testing.T) {
	s := seedIdentityStore()
	svc := NewIdentityService(s)

	s.AddVendorBusiness(models.VendorBusiness{ID: "vnd-1", Name: "Shop", Delivery: models.DeliveryOptions{Available: true, Fee: 100}})

	assert.True(t, svc.DeliveryAvailable("mkt-1"))
	assert.False(t, svc.DeliveryAvailable("mkt-2"))
	assert.True(t, svc.DeliveryAvailable("vnd-1"))
	assert.False(t, svc.DeliveryAvailable("ghost"))
}
