package services

import (
	"context"
	"testing"
	"time"

	"hotel/models"
	"hotel/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestIsRoomAvailable(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	room := &models.Room{Type: models.RoomTypeSingle, Price: 20}
	require.NoError(t, store.Rooms().Create(ctx, room))
	require.NoError(t, store.Bookings().Create(ctx, &models.Booking{
		RoomID: room.ID, UserID: 1,
		StartDate: date(t, "2024-01-03"), EndDate: date(t, "2024-01-07"),
	}))
	checker := NewAvailabilityChecker(store.Bookings())

	tests := []struct {
		start, end string
		want       bool
	}{
		{"2024-01-01", "2024-01-03", true},
		{"2024-01-07", "2024-01-09", true},
		{"2024-01-01", "2024-01-04", false},
		{"2024-01-06", "2024-01-08", false},
		{"2024-01-04", "2024-01-05", false},
		{"2024-01-01", "2024-01-10", false},
	}
	for _, tt := range tests {
		got, err := checker.IsRoomAvailable(ctx, room.ID, date(t, tt.start), date(t, tt.end))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s..%s", tt.start, tt.end)
	}

	free, err := checker.IsRoomAvailable(ctx, room.ID+1, date(t, "2024-01-03"), date(t, "2024-01-07"))
	require.NoError(t, err)
	assert.True(t, free)

	booked, err := checker.BookedOn(ctx, room.ID, date(t, "2024-01-06"))
	require.NoError(t, err)
	assert.True(t, booked)
	booked, err = checker.BookedOn(ctx, room.ID, date(t, "2024-01-07"))
	require.NoError(t, err)
	assert.False(t, booked)
}

func TestIsRoomAvailablePropagatesStoreErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker := NewAvailabilityChecker(repository.NewMemoryStore().Bookings())
	_, err := checker.IsRoomAvailable(ctx, 1, date(t, "2024-01-01"), date(t, "2024-01-02"))
	assert.ErrorIs(t, err, context.Canceled)
}
