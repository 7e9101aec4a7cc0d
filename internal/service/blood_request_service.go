package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

const (
	msgBloodUnitsRequired = "Blood type and units are required"
	msgInvalidUrgency     = "Invalid urgency"
)

// BloodRequestService manages blood requests raised by the caller.
type BloodRequestService struct {
	requests   repository.BloodRequestRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// BloodRequestCreateInput describes a new request.
type BloodRequestCreateInput struct {
	BloodType string
	Units     int
	Urgency   string
	Reason    *string
}

// NewBloodRequestService constructs the service.
func NewBloodRequestService(repo repository.BloodRequestRepository, dispatcher events.Dispatcher, logger *zap.Logger) *BloodRequestService {
	return &BloodRequestService{requests: repo, dispatcher: dispatcher, logger: loggerOrNop(logger)}
}

// List returns the caller's requests, newest first.
func (s *BloodRequestService) List(ctx context.Context, id auth.Identity) ([]domain.BloodRequest, error) {
	items, err := s.requests.ListByUser(ctx, id.UserID, 0)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list blood requests: %w", err))
	}
	return items, nil
}

// Create records a PENDING request.
func (s *BloodRequestService) Create(ctx context.Context, id auth.Identity, in BloodRequestCreateInput) (*domain.BloodRequest, error) {
	if in.BloodType == "" || in.Units <= 0 {
		return nil, apperrors.NewValidationError(msgBloodUnitsRequired)
	}
	bloodType, err := domain.ParseBloodType(in.BloodType)
	if err != nil {
		return nil, apperrors.NewValidationError(msgInvalidBloodType)
	}
	urgency, err := domain.ParseUrgency(in.Urgency)
	if err != nil {
		return nil, apperrors.NewValidationError(msgInvalidUrgency)
	}

	req := &domain.BloodRequest{
		UserID:    id.UserID,
		BloodType: bloodType,
		Units:     in.Units,
		Urgency:   urgency,
		Reason:    in.Reason,
		Status:    domain.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("create blood request: %w", err))
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventBloodRequestCreated, id.UserID, events.BloodRequestCreatedPayload{
		RequestID: req.ID,
		BloodType: req.BloodType,
		Units:     req.Units,
		Urgency:   req.Urgency,
	}))
	return req, nil
}
