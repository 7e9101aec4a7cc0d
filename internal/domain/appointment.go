package domain

import "time"

// AppointmentStatus tracks a donation appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment is a donor's booked donation slot.
type Appointment struct {
	ID        string
	UserID    string
	Date      time.Time
	Time      string
	Location  string
	Notes     *string
	BloodType *BloodType
	Status    AppointmentStatus
	CreatedAt time.Time
}
