// Package repository is the entity store behind the booking services. It has
// two backings: an in-memory store and a GORM store for Postgres or SQLite.
package repository

import (
	"context"
	"errors"

	"hotel/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict is returned when a booking would overlap another booking
	// of the same room.
	ErrConflict = errors.New("booking overlaps an existing booking")
)

// Zero-valued filter fields match everything in FindMany. FindOne needs at
// least one key and answers ErrNotFound for an empty filter.

type RoomFilter struct {
	ID uint64
}

func (f RoomFilter) empty() bool { return f.ID == 0 }

type UserFilter struct {
	ID    uint64
	Email string
}

func (f UserFilter) empty() bool { return f.ID == 0 && f.Email == "" }

type BookingFilter struct {
	ID     uint64
	RoomID uint64
	UserID uint64
}

func (f BookingFilter) empty() bool { return f.ID == 0 && f.RoomID == 0 && f.UserID == 0 }

type RoomRepository interface {
	FindOne(ctx context.Context, f RoomFilter) (*models.Room, error)
	FindMany(ctx context.Context, f RoomFilter) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, id uint64, patch models.RoomPatch) (*models.Room, error)
	// Delete removes the room together with its bookings.
	Delete(ctx context.Context, id uint64) error
}

type UserRepository interface {
	FindOne(ctx context.Context, f UserFilter) (*models.User, error)
	FindMany(ctx context.Context, f UserFilter) ([]models.User, error)
	// Create fails with ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *models.User) error
}

type BookingRepository interface {
	FindOne(ctx context.Context, f BookingFilter) (*models.Booking, error)
	FindMany(ctx context.Context, f BookingFilter) ([]models.Booking, error)
	// Create inserts the booking, failing with ErrNotFound when the room does
	// not exist and with ErrConflict when the range overlaps a booking of the
	// same room. The check and the insert are atomic within one store.
	Create(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uint64) error
}

// Store groups the repositories of one backing.
type Store interface {
	Rooms() RoomRepository
	Users() UserRepository
	Bookings() BookingRepository
	Close() error
}
