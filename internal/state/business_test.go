package state

import (
	"testing"

	"campus-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorProductCountTracksProducts(t *testing.T) {
	s := New()
	s.AddVendorBusiness(models.VendorBusiness{ID: "vb1", OwnerID: "u1"})

	s.AddVendorProduct(models.Product{ID: "p1", BusinessID: "vb1", Name: "Wrap"})
	s.AddVendorProduct(models.Product{ID: "p2", BusinessID: "vb1", Name: "Juice"})

	b, ok := s.VendorBusinessByID("vb1")
	require.True(t, ok)
	assert.Equal(t, 2, b.ProductCount)

	s.RemoveVendorProduct("p1")
	b, _ = s.VendorBusinessByID("vb1")
	assert.Equal(t, 1, b.ProductCount)

	// Removing an unknown product leaves the count alone.
	s.RemoveVendorProduct("missing")
	b, _ = s.VendorBusinessByID("vb1")
	assert.Equal(t, 1, b.ProductCount)
}

func TestProductLookupSpansSeededAndVendor(t *testing.T) {
	s := New()
	s.SeedCatalog(nil, []models.Product{{ID: "seed-1", BusinessID: "b1"}})
	s.AddVendorProduct(models.Product{ID: "vp-1", BusinessID: "vb1"})

	_, ok := s.ProductByID("seed-1")
	assert.True(t, ok)
	_, ok = s.ProductByID("vp-1")
	assert.True(t, ok)
	_, ok = s.ProductByID("missing")
	assert.False(t, ok)

	assert.Len(t, s.Products(), 2)
}

func TestProductsByBusinessAcceptsMultipleIDs(t *testing.T) {
	s := New()
	s.SeedCatalog(nil, []models.Product{
		{ID: "seed-1", BusinessID: "b1"},
		{ID: "seed-2", BusinessID: "b2"},
	})
	s.AddVendorProduct(models.Product{ID: "vp-1", BusinessID: "vb1"})

	products := s.ProductsByBusiness("b1", "vb1")
	assert.Len(t, products, 2)
}

func TestLinkVendorBusiness(t *testing.T) {
	s := New()
	s.AddVendorBusiness(models.VendorBusiness{ID: "vb1", Name: "Katanga Grill"})

	s.LinkVendorBusiness("vb1", "biz-001")

	b, _ := s.VendorBusinessByID("vb1")
	assert.Equal(t, "biz-001", b.LinkedBusinessID)

	linked, ok := s.VendorBusinessByLink("biz-001")
	require.True(t, ok)
	assert.Equal(t, "vb1", linked.ID)
}

func TestUpdateVendorBusinessUnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.UpdateVendorBusiness(models.VendorBusiness{ID: "missing", Name: "Ghost"})
	assert.Empty(t, s.VendorBusinesses(""))
}
