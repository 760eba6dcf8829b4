package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewKey(t *testing.T) {
	assert.Equal(t, ReviewKey("S1-O1"), NewReviewKey("S1", "O1"))
}

func TestIsEligible(t *testing.T) {
	reviewed := ReviewedSet{}
	reviewed.Add(NewReviewKey("S1", "O1"))

	testCases := []struct {
		name    string
		status  OrderStatus
		sweetID string
		orderID string
		want    bool
	}{
		{"concluded and not reviewed", OrderStatusConcluded, "S2", "O1", true},
		{"concluded but reviewed", OrderStatusConcluded, "S1", "O1", false},
		{"same sweet other order", OrderStatusConcluded, "S1", "O2", true},
		{"pending", OrderStatusPending, "S2", "O1", false},
		{"in production", OrderStatusInProduction, "S2", "O1", false},
		{"unknown status", OrderStatus("Cancelado"), "S2", "O1", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsEligible(tc.status, tc.sweetID, tc.orderID, reviewed))
		})
	}
}

func TestNewReviewedSet(t *testing.T) {
	set := NewReviewedSet([]*Review{
		{SweetID: "S1", OrderID: "O1"},
		{SweetID: "S2", OrderID: "O1"},
	})

	assert.Len(t, set, 2)
	assert.True(t, set.Has("S1-O1"))
	assert.True(t, set.Has("S2-O1"))
	assert.False(t, set.Has("S1-O2"))
}

func TestNewReview_Valid(t *testing.T) {
	r, err := NewReview("S1", "O1", "U1", "Ana", "  muito bom  ", 5)

	require.NoError(t, err)
	assert.Equal(t, "muito bom", r.Comment)
	assert.Equal(t, ReviewKey("S1-O1"), r.Key())
	assert.True(t, r.CreatedAt.IsZero())
}

func TestNewReview_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		sweetID string
		orderID string
		userID  string
		comment string
		rating  int
	}{
		{"rating zero", "S1", "O1", "U1", "ok", 0},
		{"rating six", "S1", "O1", "U1", "ok", 6},
		{"blank comment", "S1", "O1", "U1", "   ", 3},
		{"missing user", "S1", "O1", "", "ok", 3},
		{"missing order", "S1", "", "U1", "ok", 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReview(tc.sweetID, tc.orderID, tc.userID, "", tc.comment, tc.rating)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
