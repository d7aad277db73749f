package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"hotel/models"
)

// MemoryStore keeps every record in process memory. A single RWMutex guards
// all three tables, so multi-table operations are atomic.
type MemoryStore struct {
	mu       sync.RWMutex
	rooms    map[uint64]models.Room
	users    map[uint64]models.User
	bookings map[uint64]models.Booking
	seq      struct{ room, user, booking uint64 }
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:    make(map[uint64]models.Room),
		users:    make(map[uint64]models.User),
		bookings: make(map[uint64]models.Booking),
	}
}

func (s *MemoryStore) Rooms() RoomRepository       { return memoryRooms{s} }
func (s *MemoryStore) Users() UserRepository       { return memoryUsers{s} }
func (s *MemoryStore) Bookings() BookingRepository { return memoryBookings{s} }
func (s *MemoryStore) Close() error                { return nil }

type memoryRooms struct{ s *MemoryStore }

func (r memoryRooms) FindOne(ctx context.Context, f RoomFilter) (*models.Room, error) {
	if f.empty() {
		return nil, ErrNotFound
	}
	rooms, err := r.FindMany(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNotFound
	}
	return &rooms[0], nil
}

func (r memoryRooms) FindMany(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if f.ID != 0 && room.ID != f.ID {
			continue
		}
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryRooms) Create(ctx context.Context, room *models.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.seq.room++
	room.ID = r.s.seq.room
	stampCreated(&room.CreatedAt, &room.UpdatedAt)
	r.s.rooms[room.ID] = *room
	return nil
}

func (r memoryRooms) Update(ctx context.Context, id uint64, patch models.RoomPatch) (*models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&room)
	if !patch.Empty() {
		stampUpdated(&room.UpdatedAt)
	}
	r.s.rooms[id] = room
	return &room, nil
}

func (r memoryRooms) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.rooms, id)
	for bid, b := range r.s.bookings {
		if b.RoomID == id {
			delete(r.s.bookings, bid)
		}
	}
	return nil
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) FindOne(ctx context.Context, f UserFilter) (*models.User, error) {
	if f.empty() {
		return nil, ErrNotFound
	}
	users, err := r.FindMany(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (r memoryUsers) FindMany(ctx context.Context, f UserFilter) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if f.ID != 0 && u.ID != f.ID {
			continue
		}
		if f.Email != "" && u.Email != f.Email {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryUsers) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	r.s.seq.user++
	user.ID = r.s.seq.user
	stampCreated(&user.CreatedAt, &user.UpdatedAt)
	r.s.users[user.ID] = *user
	return nil
}

type memoryBookings struct{ s *MemoryStore }

func (r memoryBookings) FindOne(ctx context.Context, f BookingFilter) (*models.Booking, error) {
	if f.empty() {
		return nil, ErrNotFound
	}
	bookings, err := r.FindMany(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNotFound
	}
	return &bookings[0], nil
}

func (r memoryBookings) FindMany(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterBookings(f), nil
}

func (r memoryBookings) Create(ctx context.Context, booking *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[booking.RoomID]; !ok {
		return ErrNotFound
	}
	for _, b := range r.s.filterBookings(BookingFilter{RoomID: booking.RoomID}) {
		if b.Overlaps(booking.StartDate, booking.EndDate) {
			return ErrConflict
		}
	}
	r.s.seq.booking++
	booking.ID = r.s.seq.booking
	stampCreated(&booking.CreatedAt, nil)
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r memoryBookings) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

// filterBookings expects s.mu to be held.
func (s *MemoryStore) filterBookings(f BookingFilter) []models.Booking {
	out := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if f.ID != 0 && b.ID != f.ID {
			continue
		}
		if f.RoomID != 0 && b.RoomID != f.RoomID {
			continue
		}
		if f.UserID != 0 && b.UserID != f.UserID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func stampCreated(created, updated *time.Time) {
	t := time.Now().UTC()
	*created = t
	if updated != nil {
		*updated = t
	}
}

func stampUpdated(updated *time.Time) {
	*updated = time.Now().UTC()
}
