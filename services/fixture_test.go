package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel/models"
	"hotel/repository"
	"hotel/services/notification"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Publish(e notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store    *repository.MemoryStore
	hasher   *BcryptHasher
	tokens   *JWTIssuer
	notifier *recordingNotifier
	auth     *AuthService
	bookings *BookingService
	rooms    *RoomService
}

var fixedNow = time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    repository.NewMemoryStore(),
		hasher:   NewBcryptHasher(bcrypt.MinCost),
		tokens:   NewJWTIssuer("test-secret", time.Hour),
		notifier: &recordingNotifier{},
	}
	f.auth = NewAuthService(f.store.Users(), f.hasher, f.tokens, nil)
	f.bookings = NewBookingService(BookingServiceOptions{Store: f.store, Notifier: f.notifier})
	f.rooms = NewRoomService(RoomServiceOptions{Store: f.store, Now: func() time.Time { return fixedNow }})
	return f
}

func (f *fixture) user(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := f.hasher.Hash("pw")
	require.NoError(t, err)
	u := &models.User{Email: email, Password: hash, Role: role}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) room(t *testing.T, roomType models.RoomType, price float64) *models.Room {
	t.Helper()
	r := &models.Room{Type: roomType, Price: price}
	require.NoError(t, f.store.Rooms().Create(context.Background(), r))
	return r
}

func as(u *models.User) context.Context {
	return WithCaller(context.Background(), &models.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
}
