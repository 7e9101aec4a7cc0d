package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventAppointmentScheduled EventType = "appointment_scheduled"
	EventBloodRequestCreated  EventType = "blood_request_created"
	EventInventoryUpdated     EventType = "inventory_updated"
	EventInventoryShortage    EventType = "inventory_shortage"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, userID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AppointmentScheduledPayload payload.
type AppointmentScheduledPayload struct {
	AppointmentID string    `json:"appointment_id"`
	Date          time.Time `json:"date"`
	Time          string    `json:"time"`
	Location      string    `json:"location"`
}

// BloodRequestCreatedPayload payload.
type BloodRequestCreatedPayload struct {
	RequestID string           `json:"request_id"`
	BloodType domain.BloodType `json:"blood_type"`
	Units     int              `json:"units"`
	Urgency   domain.Urgency   `json:"urgency"`
}

// InventoryPayload is shared by inventory_updated and inventory_shortage.
type InventoryPayload struct {
	HospitalID string                 `json:"hospital_id"`
	BloodType  domain.BloodType       `json:"blood_type"`
	Units      int                    `json:"units"`
	Status     domain.InventoryStatus `json:"status"`
	Created    bool                   `json:"created"`
}
