package services

import (
	"context"
	stderrors "errors"

	"hotel/builders"
	"hotel/dto"
	"hotel/errors"
	"hotel/metrics"
	"hotel/models"
	"hotel/repository"
	"hotel/services/logger"
	"hotel/services/notification"
)

type BookingServiceOptions struct {
	Store    repository.Store
	Locker   RoomLocker
	Cache    RoomCache
	Notifier notification.Service
	Logger   logger.Logger
}

// BookingService books and cancels rooms.
type BookingService struct {
	store    repository.Store
	checker  *AvailabilityChecker
	locker   RoomLocker
	cache    RoomCache
	notifier notification.Service
	log      logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		store:    opts.Store,
		checker:  NewAvailabilityChecker(opts.Store.Bookings()),
		locker:   opts.Locker,
		cache:    opts.Cache,
		notifier: opts.Notifier,
		log:      opts.Logger,
	}
	if s.locker == nil {
		s.locker = NewMemoryRoomLocker()
	}
	if s.cache == nil {
		s.cache = NewNopRoomCache()
	}
	if s.notifier == nil {
		s.notifier = notification.NopService{}
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	return s
}

// BookRoom books a room for the caller, or for input.UserID when an admin
// books on someone's behalf.
func (s *BookingService) BookRoom(ctx context.Context, input dto.BookRoomInput) (*models.Booking, error) {
	caller, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	ownerID := caller.UserID
	if input.UserID != 0 && input.UserID != caller.UserID {
		if !caller.IsAdmin() {
			return nil, errors.New(errors.ErrCodeForbidden, "cannot book for another user")
		}
		if _, err := s.store.Users().FindOne(ctx, repository.UserFilter{ID: input.UserID}); err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return nil, errors.Wrap(errors.ErrCodeUserNotFound, "user not found", err)
			}
			return nil, errors.Wrap(errors.ErrCodeDatabase, "look up user", err)
		}
		ownerID = input.UserID
	}

	start, err := models.ParseDate(input.StartDate)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDateRange, "invalid start date", err)
	}
	end, err := models.ParseDate(input.EndDate)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDateRange, "invalid end date", err)
	}
	if !start.Before(end) {
		return nil, errors.New(errors.ErrCodeInvalidDateRange, "start date must precede end date")
	}

	if _, err := s.store.Rooms().FindOne(ctx, repository.RoomFilter{ID: input.RoomID}); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(errors.ErrCodeRoomNotFound, "room not found", err)
		}
		return nil, errors.Wrap(errors.ErrCodeDatabase, "look up room", err)
	}

	booking := builders.NewBookingBuilder().
		WithUser(ownerID).
		WithRoom(input.RoomID).
		WithStay(start, end).
		Build()

	if err := s.insert(ctx, booking); err != nil {
		return nil, err
	}

	metrics.RecordBooking("created")
	s.log.Info("room booked", map[string]interface{}{
		"booking_id": booking.ID,
		"room_id":    booking.RoomID,
		"user_id":    booking.UserID,
		"start_date": models.FormatDate(booking.StartDate),
		"end_date":   models.FormatDate(booking.EndDate),
	})
	s.afterChange(ctx, notification.EventBookingCreated, *booking)
	return booking, nil
}

// insert runs the availability check and the insert under the room lock.
func (s *BookingService) insert(ctx context.Context, booking *models.Booking) error {
	unlock, err := s.locker.Lock(ctx, booking.RoomID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "lock room", err)
	}
	defer unlock()

	available, err := s.checker.IsRoomAvailable(ctx, booking.RoomID, booking.StartDate, booking.EndDate)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDatabase, "check availability", err)
	}
	if !available {
		return errors.New(errors.ErrCodeRoomNotAvailable, "room is booked for the requested dates")
	}

	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrConflict):
			return errors.Wrap(errors.ErrCodeRoomNotAvailable, "room is booked for the requested dates", err)
		case stderrors.Is(err, repository.ErrNotFound):
			return errors.Wrap(errors.ErrCodeRoomNotFound, "room not found", err)
		}
		return errors.Wrap(errors.ErrCodeDatabase, "create booking", err)
	}
	return nil
}

// CancelBooking deletes a booking owned by the caller, or any booking for an
// admin, and returns it as it was.
func (s *BookingService) CancelBooking(ctx context.Context, id uint64) (*models.Booking, error) {
	if _, err := RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := RequireOwnerOrAdmin(ctx, booking.UserID); err != nil {
		return nil, err
	}
	if err := s.store.Bookings().Delete(ctx, booking.ID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(errors.ErrCodeBookingNotFound, "booking not found", err)
		}
		return nil, errors.Wrap(errors.ErrCodeDatabase, "delete booking", err)
	}

	metrics.RecordBooking("cancelled")
	s.log.Info("booking cancelled", map[string]interface{}{"booking_id": booking.ID, "room_id": booking.RoomID})
	s.afterChange(ctx, notification.EventBookingCancelled, *booking)
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	if _, err := RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().FindMany(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uint64) (*models.Booking, error) {
	if _, err := RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := RequireOwnerOrAdmin(ctx, booking.UserID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) UserBookings(ctx context.Context, userID uint64) ([]models.Booking, error) {
	if _, err := RequireOwnerOrAdmin(ctx, userID); err != nil {
		return nil, err
	}
	bookings, err := s.store.Bookings().FindMany(ctx, repository.BookingFilter{UserID: userID})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) find(ctx context.Context, id uint64) (*models.Booking, error) {
	booking, err := s.store.Bookings().FindOne(ctx, repository.BookingFilter{ID: id})
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeBookingNotFound, "booking not found", err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "look up booking", err)
	}
	return booking, nil
}

// afterChange drops cached availability and publishes the event. Neither
// failure fails the booking.
func (s *BookingService) afterChange(ctx context.Context, kind string, booking models.Booking) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("room cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
	if err := s.notifier.Publish(notification.NewEventBuilder(kind, booking).Build()); err != nil {
		s.log.Warn("booking event not published", map[string]interface{}{"event": kind, "error": err.Error()})
	}
}
