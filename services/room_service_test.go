package services

import (
	"context"
	"testing"

	"hotel/dto"
	"hotel/errors"
	"hotel/models"
	"hotel/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomAdminRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	customer := f.user(t, "a@x.com", models.RoleCustomer)
	r := f.room(t, models.RoomTypeSingle, 20)
	price := 50.0

	_, err := f.rooms.CreateRoom(as(customer), dto.CreateRoomInput{Type: "DOUBLE", Price: 10})
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	_, err = f.rooms.UpdateRoom(as(customer), dto.UpdateRoomInput{ID: r.ID, Price: &price})
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
	_, err = f.rooms.DeleteRoom(as(customer), r.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	_, err = f.rooms.CreateRoom(context.Background(), dto.CreateRoomInput{Type: "DOUBLE", Price: 10})
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthenticated))

	unchanged, err := f.store.Rooms().FindOne(context.Background(), repository.RoomFilter{ID: r.ID})
	require.NoError(t, err)
	assert.Equal(t, 20.0, unchanged.Price)
}

func TestRoomAdminLifecycle(t *testing.T) {
	f := newFixture(t)
	admin := as(f.user(t, "root@x.com", models.RoleAdmin))

	room, err := f.rooms.CreateRoom(admin, dto.CreateRoomInput{Type: "suite", Price: 100})
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeSuite, room.Type)

	price := 120.0
	updated, err := f.rooms.UpdateRoom(admin, dto.UpdateRoomInput{ID: room.ID, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeSuite, updated.Type)
	assert.Equal(t, 120.0, updated.Price)

	deluxe := "DELUXE"
	updated, err = f.rooms.UpdateRoom(admin, dto.UpdateRoomInput{ID: room.ID, Type: &deluxe})
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeDeluxe, updated.Type)
	assert.Equal(t, 120.0, updated.Price)

	deleted, err := f.rooms.DeleteRoom(admin, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeDeluxe, deleted.Type)

	_, err = f.rooms.DeleteRoom(admin, room.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeRoomNotFound))
	_, err = f.rooms.UpdateRoom(admin, dto.UpdateRoomInput{ID: room.ID, Price: &price})
	assert.True(t, errors.Is(err, errors.ErrCodeRoomNotFound))
}

func TestRoomAdminValidation(t *testing.T) {
	f := newFixture(t)
	admin := as(f.user(t, "root@x.com", models.RoleAdmin))
	r := f.room(t, models.RoomTypeSingle, 20)

	_, err := f.rooms.CreateRoom(admin, dto.CreateRoomInput{Type: "PENTHOUSE", Price: 10})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidRoomType))
	_, err = f.rooms.CreateRoom(admin, dto.CreateRoomInput{Type: "SINGLE", Price: -1})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	neg := -3.0
	_, err = f.rooms.UpdateRoom(admin, dto.UpdateRoomInput{ID: r.ID, Price: &neg})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestAvailableRoomsExcludesRoomsBookedToday(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a@x.com", models.RoleCustomer)
	busy := f.room(t, models.RoomTypeSingle, 20)
	free := f.room(t, models.RoomTypeDouble, 35)
	later := f.room(t, models.RoomTypeSuite, 100)

	// fixedNow is 2024-01-02
	_, err := f.bookings.BookRoom(as(a), dto.BookRoomInput{RoomID: busy.ID, StartDate: "2024-01-01", EndDate: "2024-01-03"})
	require.NoError(t, err)
	_, err = f.bookings.BookRoom(as(a), dto.BookRoomInput{RoomID: later.ID, StartDate: "2024-01-03", EndDate: "2024-01-05"})
	require.NoError(t, err)

	rooms, err := f.rooms.AvailableRooms(context.Background())
	require.NoError(t, err)
	ids := []uint64{}
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []uint64{free.ID, later.ID}, ids)

	booked, err := f.rooms.IsBooked(context.Background(), busy.ID)
	require.NoError(t, err)
	assert.True(t, booked)
	booked, err = f.rooms.IsBooked(context.Background(), later.ID)
	require.NoError(t, err)
	assert.False(t, booked)
}
