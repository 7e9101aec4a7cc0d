package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

const (
	msgAppointmentRequired = "Date, time, and location are required"
	msgInvalidDate         = "Invalid date"
)

// AppointmentService manages a caller's donation appointments.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// AppointmentCreateInput describes a booking.
type AppointmentCreateInput struct {
	Date      string
	Time      string
	Location  string
	Notes     *string
	BloodType *string
}

// NewAppointmentService constructs the service.
func NewAppointmentService(repo repository.AppointmentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{appointments: repo, dispatcher: dispatcher, logger: loggerOrNop(logger)}
}

// List returns every appointment of the caller, latest date first.
func (s *AppointmentService) List(ctx context.Context, id auth.Identity) ([]domain.Appointment, error) {
	items, err := s.appointments.ListByUser(ctx, id.UserID, 0)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list appointments: %w", err))
	}
	return items, nil
}

// Create books an appointment in SCHEDULED state.
func (s *AppointmentService) Create(ctx context.Context, id auth.Identity, in AppointmentCreateInput) (*domain.Appointment, error) {
	if in.Date == "" || in.Time == "" || in.Location == "" {
		return nil, apperrors.NewValidationError(msgAppointmentRequired)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, apperrors.NewValidationError(msgInvalidDate)
	}

	appt := &domain.Appointment{
		UserID:   id.UserID,
		Date:     date,
		Time:     in.Time,
		Location: in.Location,
		Notes:    in.Notes,
		Status:   domain.AppointmentStatusScheduled,
	}
	if in.BloodType != nil && *in.BloodType != "" {
		bt, err := domain.ParseBloodType(*in.BloodType)
		if err != nil {
			return nil, apperrors.NewValidationError(msgInvalidBloodType)
		}
		appt.BloodType = &bt
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("create appointment: %w", err))
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventAppointmentScheduled, id.UserID, events.AppointmentScheduledPayload{
		AppointmentID: appt.ID,
		Date:          appt.Date,
		Time:          appt.Time,
		Location:      appt.Location,
	}))
	return appt, nil
}

// parseDate accepts an RFC 3339 timestamp or a calendar date (UTC midnight).
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, raw)
}
