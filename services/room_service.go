package services

import (
	"context"
	stderrors "errors"
	"time"

	"hotel/dto"
	"hotel/errors"
	"hotel/models"
	"hotel/repository"
	"hotel/services/logger"
	"hotel/validator"
)

type RoomServiceOptions struct {
	Store  repository.Store
	Cache  RoomCache
	Logger logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// RoomService manages rooms and answers which of them are free today.
type RoomService struct {
	rooms   repository.RoomRepository
	checker *AvailabilityChecker
	cache   RoomCache
	log     logger.Logger
	now     func() time.Time
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	s := &RoomService{
		rooms:   opts.Store.Rooms(),
		checker: NewAvailabilityChecker(opts.Store.Bookings()),
		cache:   opts.Cache,
		log:     opts.Logger,
		now:     opts.Now,
	}
	if s.cache == nil {
		s.cache = NewNopRoomCache()
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *RoomService) today() time.Time {
	return models.NormalizeDate(s.now())
}

func (s *RoomService) CreateRoom(ctx context.Context, input dto.CreateRoomInput) (*models.Room, error) {
	if _, err := RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	roomType, ok := models.ParseRoomType(input.Type)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRoomType, "unknown room type "+input.Type)
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	room := &models.Room{Type: roomType, Price: input.Price}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "create room", err)
	}
	s.log.Info("room created", map[string]interface{}{"room_id": room.ID, "type": room.Type})
	s.invalidate(ctx)
	return room, nil
}

// UpdateRoom changes only the fields present in input.
func (s *RoomService) UpdateRoom(ctx context.Context, input dto.UpdateRoomInput) (*models.Room, error) {
	if _, err := RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	var patch models.RoomPatch
	if input.Type != nil {
		roomType, ok := models.ParseRoomType(*input.Type)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidRoomType, "unknown room type "+*input.Type)
		}
		patch.Type = &roomType
	}
	if input.Price != nil {
		if err := validator.ValidatePrice(*input.Price); err != nil {
			return nil, err
		}
		patch.Price = input.Price
	}

	room, err := s.rooms.Update(ctx, input.ID, patch)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeRoomNotFound, "room not found", err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "update room", err)
	}
	s.log.Info("room updated", map[string]interface{}{"room_id": room.ID})
	s.invalidate(ctx)
	return room, nil
}

// DeleteRoom removes the room with its bookings and returns it as it was.
func (s *RoomService) DeleteRoom(ctx context.Context, id uint64) (*models.Room, error) {
	if _, err := RequireRole(ctx, models.RoleAdmin); err != nil {
		return nil, err
	}
	room, err := s.rooms.FindOne(ctx, repository.RoomFilter{ID: id})
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeRoomNotFound, "room not found", err)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "look up room", err)
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Wrap(errors.ErrCodeRoomNotFound, "room not found", err)
		}
		return nil, errors.Wrap(errors.ErrCodeDatabase, "delete room", err)
	}
	s.log.Info("room deleted", map[string]interface{}{"room_id": id})
	s.invalidate(ctx)
	return room, nil
}

// AvailableRooms lists the rooms no booking covers today. It is public.
func (s *RoomService) AvailableRooms(ctx context.Context) ([]models.Room, error) {
	day := s.today()
	rooms, hit, err := s.cache.GetAvailable(ctx, day)
	if err != nil {
		s.log.Warn("room cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if hit {
		return rooms, nil
	}
	return s.refresh(ctx, day)
}

// Warm recomputes today's available rooms and stores them in the cache.
func (s *RoomService) Warm(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	_, err := s.refresh(ctx, s.today())
	return err
}

// IsBooked reports whether a booking covers the room today.
func (s *RoomService) IsBooked(ctx context.Context, roomID uint64) (bool, error) {
	booked, err := s.checker.BookedOn(ctx, roomID, s.today())
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeDatabase, "check availability", err)
	}
	return booked, nil
}

func (s *RoomService) refresh(ctx context.Context, day time.Time) ([]models.Room, error) {
	generation, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.log.Warn("room cache read failed", map[string]interface{}{"error": genErr.Error()})
	}
	all, err := s.rooms.FindMany(ctx, repository.RoomFilter{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, "list rooms", err)
	}
	free := make([]models.Room, 0, len(all))
	for _, room := range all {
		booked, err := s.checker.BookedOn(ctx, room.ID, day)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDatabase, "check availability", err)
		}
		if !booked {
			free = append(free, room)
		}
	}
	if genErr != nil {
		return free, nil
	}
	// not written when a booking or room change invalidated the cache meanwhile
	if _, err := s.cache.SetAvailable(ctx, day, generation, free); err != nil {
		s.log.Warn("room cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return free, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("room cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
