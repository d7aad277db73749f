package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel/models"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() models.Booking {
	return models.Booking{
		ID:        5,
		RoomID:    2,
		UserID:    9,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestEventBuilder(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := NewEventBuilder(EventBookingCreated, testBooking()).At(at).Build()
	assert.Equal(t, Event{
		Type:      "booking.created",
		BookingID: 5,
		RoomID:    2,
		UserID:    9,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-05",
		At:        at,
	}, e)
}

func TestMelodyServiceBroadcasts(t *testing.T) {
	m := melody.New()
	defer m.Close()
	connected := make(chan struct{}, 1)
	m.HandleConnect(func(*melody.Session) { connected <- struct{}{} })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = m.HandleRequest(w, r)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("websocket session never connected")
	}

	svc := NewMelodyService(m)
	require.NoError(t, svc.Publish(NewEventBuilder(EventBookingCancelled, testBooking()).Build()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, EventBookingCancelled, got.Type)
	assert.Equal(t, uint64(5), got.BookingID)
	assert.Equal(t, "2024-01-05", got.EndDate)
}

func TestMelodyServiceWithoutInstance(t *testing.T) {
	assert.Error(t, NewMelodyService(nil).Publish(Event{}))
	assert.NoError(t, NopService{}.Publish(Event{}))
}
