package builders

import (
	"time"

	"hotel/models"
)

// BookingBuilder assembles a booking with normalized dates.
type BookingBuilder struct {
	booking *models.Booking
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{booking: &models.Booking{}}
}

func (b *BookingBuilder) WithUser(userID uint64) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

func (b *BookingBuilder) WithRoom(roomID uint64) *BookingBuilder {
	b.booking.RoomID = roomID
	return b
}

func (b *BookingBuilder) WithStay(start, end time.Time) *BookingBuilder {
	b.booking.StartDate = models.NormalizeDate(start)
	b.booking.EndDate = models.NormalizeDate(end)
	return b
}

func (b *BookingBuilder) Build() *models.Booking {
	booking := *b.booking
	return &booking
}
