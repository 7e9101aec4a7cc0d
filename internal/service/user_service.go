package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

// UserService serves the current-user view.
type UserService struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	appointments repository.AppointmentRepository
	requests     repository.BloodRequestRepository
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo         repository.UserRepository
	ProfileRepo      repository.ProfileRepository
	AppointmentRepo  repository.AppointmentRepository
	BloodRequestRepo repository.BloodRequestRepository
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:        deps.UserRepo,
		profiles:     deps.ProfileRepo,
		appointments: deps.AppointmentRepo,
		requests:     deps.BloodRequestRepo,
	}
}

// GetCurrent loads the caller with profiles and recent activity.
func (s *UserService) GetCurrent(ctx context.Context, id auth.Identity) (*domain.UserDetails, error) {
	user, err := s.users.GetByID(ctx, id.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load user: %w", err))
	}

	details := &domain.UserDetails{User: *user}
	details.User.PasswordHash = ""

	if details.DonorProfile, err = optional(s.profiles.GetDonorByUserID(ctx, user.ID)); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load donor profile: %w", err))
	}
	if details.HospitalProfile, err = optional(s.profiles.GetHospitalByUserID(ctx, user.ID)); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load hospital profile: %w", err))
	}
	if details.Appointments, err = s.appointments.ListByUser(ctx, user.ID, recentLimit); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load appointments: %w", err))
	}
	if details.BloodRequests, err = s.requests.ListByUser(ctx, user.ID, recentLimit); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load blood requests: %w", err))
	}
	return details, nil
}

// optional turns a missing row into a nil result.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}
