package services

import (
	"context"
	"time"

	"hotel/models"
	"hotel/repository"
)

// AvailabilityChecker answers whether a room is free for a date range.
type AvailabilityChecker struct {
	bookings repository.BookingRepository
}

func NewAvailabilityChecker(bookings repository.BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

// IsRoomAvailable reports whether no booking of the room overlaps
// [start, end). It does not check that start precedes end.
func (c *AvailabilityChecker) IsRoomAvailable(ctx context.Context, roomID uint64, start, end time.Time) (bool, error) {
	bookings, err := c.bookings.FindMany(ctx, repository.BookingFilter{RoomID: roomID})
	if err != nil {
		return false, err
	}
	start, end = models.NormalizeDate(start), models.NormalizeDate(end)
	for _, b := range bookings {
		if b.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// BookedOn reports whether some booking of the room covers the calendar day.
func (c *AvailabilityChecker) BookedOn(ctx context.Context, roomID uint64, day time.Time) (bool, error) {
	d := models.NormalizeDate(day)
	available, err := c.IsRoomAvailable(ctx, roomID, d, d.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}
	return !available, nil
}
