package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		delivery bool
		want     bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true, true},
		{"confirmed to cancelled rejected", StatusConfirmed, StatusCancelled, true, false},
		{"no regression", StatusPreparing, StatusConfirmed, true, false},
		{"same status rejected", StatusReady, StatusReady, true, false},
		{"skip ahead allowed", StatusPending, StatusReady, true, true},
		{"ready to out for delivery with delivery", StatusReady, StatusOutForDelivery, true, true},
		{"ready to out for delivery without delivery", StatusReady, StatusOutForDelivery, false, false},
		{"ready straight to delivered without delivery", StatusReady, StatusDelivered, false, true},
		{"delivered is terminal", StatusDelivered, StatusPending, true, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, true, false},
		{"unknown status", "shipped", StatusDelivered, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.delivery))
		})
	}
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, NextStatus(StatusPending, true))
	assert.Equal(t, StatusPreparing, NextStatus(StatusConfirmed, true))
	assert.Equal(t, StatusReady, NextStatus(StatusPreparing, true))
	assert.Equal(t, StatusOutForDelivery, NextStatus(StatusReady, true))
	assert.Equal(t, StatusDelivered, NextStatus(StatusReady, false))
	assert.Equal(t, StatusDelivered, NextStatus(StatusOutForDelivery, false))
	assert.Equal(t, "", NextStatus(StatusDelivered, true))
	assert.Equal(t, "", NextStatus(StatusCancelled, true))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}
