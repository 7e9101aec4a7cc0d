package dto

import (
	"time"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// CreateAppointmentRequest payload. Date is RFC 3339 or YYYY-MM-DD.
type CreateAppointmentRequest struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Location  string  `json:"location"`
	Notes     *string `json:"notes"`
	BloodType *string `json:"bloodType"`
}

// AppointmentResponse is a stored appointment.
type AppointmentResponse struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"userId"`
	Date      time.Time                `json:"date"`
	Time      string                   `json:"time"`
	Location  string                   `json:"location"`
	Notes     *string                  `json:"notes"`
	BloodType *domain.BloodType        `json:"bloodType"`
	Status    domain.AppointmentStatus `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
}

// NewAppointmentResponse maps a domain appointment.
func NewAppointmentResponse(a domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		Time:      a.Time,
		Location:  a.Location,
		Notes:     a.Notes,
		BloodType: a.BloodType,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

// NewAppointmentList maps a slice; the result is never nil.
func NewAppointmentList(items []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAppointmentResponse(a))
	}
	return out
}
