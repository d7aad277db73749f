package notification

import (
	"fmt"
	"time"

	"hotel/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

type Event struct {
	Type      string    `json:"type"`
	BookingID uint64    `json:"bookingId"`
	RoomID    uint64    `json:"roomId"`
	UserID    uint64    `json:"userId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	At        time.Time `json:"at"`
}

type Service interface {
	Publish(event Event) error
}

// MelodyService broadcasts events to every connected websocket session.
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) Publish(event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.m.Broadcast(payload)
}

type NopService struct{}

func (NopService) Publish(Event) error { return nil }

type EventBuilder struct {
	kind    string
	booking models.Booking
	at      time.Time
}

func NewEventBuilder(kind string, booking models.Booking) *EventBuilder {
	return &EventBuilder{kind: kind, booking: booking, at: time.Now().UTC()}
}

func (b *EventBuilder) At(t time.Time) *EventBuilder {
	b.at = t.UTC()
	return b
}

func (b *EventBuilder) Build() Event {
	return Event{
		Type:      b.kind,
		BookingID: b.booking.ID,
		RoomID:    b.booking.RoomID,
		UserID:    b.booking.UserID,
		StartDate: models.FormatDate(b.booking.StartDate),
		EndDate:   models.FormatDate(b.booking.EndDate),
		At:        b.at,
	}
}
