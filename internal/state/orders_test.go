package state

import (
	"testing"
	"time"

	"campus-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLinkedOrder(s *Store) (models.Order, models.VendorOrder) {
	order := models.Order{
		ID:     "o1",
		UserID: "u1",
		Status: models.StatusPending,
		TrackingUpdates: []models.OrderUpdate{
			{ID: "t0", Status: models.StatusPending, Timestamp: time.Now().UTC().Add(-time.Minute)},
		},
	}
	vo := models.VendorOrder{
		ID:           "vo1",
		BusinessID:   "b1",
		BuyerOrderID: "o1",
		CustomerID:   "u1",
		Status:       models.StatusPending,
	}
	s.AddOrder(order)
	s.AddVendorOrder(vo)
	return order, vo
}

func update(status string) models.OrderUpdate {
	return models.OrderUpdate{
		ID:        "t-" + status,
		Status:    status,
		Message:   models.StatusMessage(status),
		Timestamp: time.Now().UTC(),
	}
}

func TestTransitionMirrorsIntoBuyerOrder(t *testing.T) {
	s := New()
	seedLinkedOrder(s)

	vo, mirrored, err := s.TransitionVendorOrder("vo1", models.StatusConfirmed, true, update(models.StatusConfirmed))
	require.NoError(t, err)
	require.NotNil(t, mirrored)

	assert.Equal(t, models.StatusConfirmed, vo.Status)
	assert.Equal(t, models.StatusConfirmed, mirrored.Status)
	require.Len(t, mirrored.TrackingUpdates, 2)
	assert.Equal(t, models.StatusConfirmed, mirrored.TrackingUpdates[1].Status)
	assert.False(t, mirrored.TrackingUpdates[1].Timestamp.Before(mirrored.TrackingUpdates[0].Timestamp))

	stored, ok := s.OrderByID("o1")
	require.True(t, ok)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestTransitionRejectsRegression(t *testing.T) {
	s := New()
	seedLinkedOrder(s)

	_, _, err := s.TransitionVendorOrder("vo1", models.StatusPreparing, true, update(models.StatusPreparing))
	require.NoError(t, err)

	_, _, err = s.TransitionVendorOrder("vo1", models.StatusConfirmed, true, update(models.StatusConfirmed))
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// The failed attempt must not have touched the buyer order.
	order, _ := s.OrderByID("o1")
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Len(t, order.TrackingUpdates, 2)
}

func TestTransitionWithoutLinkageSkipsMirror(t *testing.T) {
	s := New()
	s.AddVendorOrder(models.VendorOrder{ID: "vo2", BusinessID: "b1", Status: models.StatusPending})

	vo, mirrored, err := s.TransitionVendorOrder("vo2", models.StatusConfirmed, true, update(models.StatusConfirmed))
	require.NoError(t, err)
	assert.Nil(t, mirrored)
	assert.Equal(t, models.StatusConfirmed, vo.Status)
}

func TestTransitionUnknownOrder(t *testing.T) {
	s := New()

	_, _, err := s.TransitionVendorOrder("missing", models.StatusConfirmed, true, update(models.StatusConfirmed))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeliveredMarksBuyerOrderReviewable(t *testing.T) {
	s := New()
	seedLinkedOrder(s)

	for _, status := range []string{models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusDelivered} {
		_, _, err := s.TransitionVendorOrder("vo1", status, false, update(status))
		require.NoError(t, err)
	}

	order, _ := s.OrderByID("o1")
	assert.True(t, order.CanReview)
}

func TestVendorOrdersFiltersAcceptableIDs(t *testing.T) {
	s := New()
	s.AddVendorOrder(models.VendorOrder{ID: "vo1", BusinessID: "b1"})
	s.AddVendorOrder(models.VendorOrder{ID: "vo2", BusinessID: "legacy-1"})
	s.AddVendorOrder(models.VendorOrder{ID: "vo3", BusinessID: "b2"})

	orders := s.VendorOrders("b1", "legacy-1")
	require.Len(t, orders, 2)
}

func TestVendorOrdersByBuyerOrder(t *testing.T) {
	s := New()
	s.AddVendorOrder(models.VendorOrder{ID: "vo1", BusinessID: "b1", BuyerOrderID: "o1"})
	s.AddVendorOrder(models.VendorOrder{ID: "vo2", BusinessID: "b2", BuyerOrderID: "o1"})
	s.AddVendorOrder(models.VendorOrder{ID: "vo3", BusinessID: "b1", BuyerOrderID: "o2"})

	assert.Len(t, s.VendorOrdersByBuyerOrder("o1"), 2)
}

func TestMirrorKeepsFurthestStatusAcrossVendorOrders(t *testing.T) {
	s := New()
	s.AddOrder(models.Order{ID: "o1", UserID: "u1", Status: models.StatusPending})
	s.AddVendorOrder(models.VendorOrder{ID: "voA", BusinessID: "b1", BuyerOrderID: "o1", Status: models.StatusPending})
	s.AddVendorOrder(models.VendorOrder{ID: "voB", BusinessID: "b2", BuyerOrderID: "o1", Status: models.StatusPending})

	for _, status := range []string{models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusDelivered} {
		_, _, err := s.TransitionVendorOrder("voA", status, false, update(status))
		require.NoError(t, err)
	}

	// The slower vendor order advances, but the buyer order never moves
	// backwards from delivered.
	_, mirrored, err := s.TransitionVendorOrder("voB", models.StatusConfirmed, false, update(models.StatusConfirmed))
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, models.StatusDelivered, mirrored.Status)

	order, _ := s.OrderByID("o1")
	assert.Equal(t, models.StatusDelivered, order.Status)
	// The tracking log still records voB's progress.
	assert.Equal(t, models.StatusConfirmed, order.TrackingUpdates[len(order.TrackingUpdates)-1].Status)

	voB, _ := s.VendorOrderByID("voB")
	assert.Equal(t, models.StatusConfirmed, voB.Status)
}
