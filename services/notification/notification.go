package notification

import (
	"encoding/json"
	"fmt"

	"github.com/olahol/melody"
)

// Service broadcasts backend events to connected dashboard clients.
type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// BookingEvent is the payload pushed to the calendar view whenever a
// booking changes, so open dashboards refresh the affected dates.
type BookingEvent struct {
	Event      string `json:"event"` // created, updated, deleted, split
	BookingID  uint   `json:"bookingId"`
	PropertyID uint   `json:"propertyId"`
	CheckIn    string `json:"checkIn,omitempty"`
	CheckOut   string `json:"checkOut,omitempty"`
}

// BuildBookingEvent serializes a booking event message.
func BuildBookingEvent(event string, bookingID, propertyID uint, checkIn, checkOut string) string {
	payload, err := json.Marshal(BookingEvent{
		Event:      event,
		BookingID:  bookingID,
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		return fmt.Sprintf(`{"event":%q,"bookingId":%d}`, event, bookingID)
	}
	return string(payload)
}
