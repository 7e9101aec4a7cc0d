package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/cache"
	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/observability"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

const msgHospitalNotFound = "Hospital profile not found"

// InventoryService manages the stock of the caller's hospital.
type InventoryService struct {
	profiles   repository.ProfileRepository
	inventory  repository.InventoryRepository
	cache      cache.Cache
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// InventoryDependencies bundles collaborators. Cache, Dispatcher and
// Metrics are optional.
type InventoryDependencies struct {
	ProfileRepo   repository.ProfileRepository
	InventoryRepo repository.InventoryRepository
	Cache         cache.Cache
	CacheTTL      time.Duration
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// InventoryUpsertInput sets the unit count of one blood type. Units is a
// pointer because zero is a valid count.
type InventoryUpsertInput struct {
	BloodType string
	Units     *int
}

// NewInventoryService constructs the service.
func NewInventoryService(deps InventoryDependencies) *InventoryService {
	return &InventoryService{
		profiles:   deps.ProfileRepo,
		inventory:  deps.InventoryRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     loggerOrNop(deps.Logger),
	}
}

// List returns the hospital's stock ordered by blood type.
func (s *InventoryService) List(ctx context.Context, id auth.Identity) ([]domain.InventoryItem, error) {
	hospital, err := s.hospital(ctx, id)
	if err != nil {
		return nil, err
	}

	key := cache.InventoryKey(hospital.ID)
	if items, ok := s.cached(ctx, key); ok {
		return items, nil
	}

	items, err := s.inventory.ListByHospital(ctx, hospital.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("list inventory: %w", err))
	}
	s.store(ctx, key, items)
	return items, nil
}

// Upsert writes the unit count for a blood type and reports whether the row
// was created. Status is always derived from units.
func (s *InventoryService) Upsert(ctx context.Context, id auth.Identity, in InventoryUpsertInput) (*domain.InventoryItem, bool, error) {
	hospital, err := s.hospital(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if in.BloodType == "" || in.Units == nil {
		return nil, false, apperrors.NewValidationError(msgBloodUnitsRequired)
	}
	bloodType, err := domain.ParseBloodType(in.BloodType)
	if err != nil {
		return nil, false, apperrors.NewValidationError(msgInvalidBloodType)
	}

	item := &domain.InventoryItem{
		HospitalID: hospital.ID,
		BloodType:  bloodType,
		Units:      *in.Units,
		Status:     domain.DeriveInventoryStatus(*in.Units),
	}
	created, err := s.inventory.Upsert(ctx, item)
	if err != nil {
		return nil, false, apperrors.NewInternalError(fmt.Errorf("upsert inventory: %w", err))
	}

	s.invalidate(ctx, cache.InventoryKey(hospital.ID))
	s.metrics.RecordInventoryWrite(string(item.Status), created)

	payload := events.InventoryPayload{
		HospitalID: hospital.ID,
		BloodType:  item.BloodType,
		Units:      item.Units,
		Status:     item.Status,
		Created:    created,
	}
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventInventoryUpdated, id.UserID, payload))
	if item.Status.Shortage() {
		publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventInventoryShortage, id.UserID, payload))
	}
	return item, created, nil
}

func (s *InventoryService) hospital(ctx context.Context, id auth.Identity) (*domain.HospitalProfile, error) {
	hospital, err := s.profiles.GetHospitalByUserID(ctx, id.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(msgHospitalNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load hospital profile: %w", err))
	}
	return hospital, nil
}

// Cache failures degrade to the record store and are only logged.

func (s *InventoryService) cached(ctx context.Context, key string) ([]domain.InventoryItem, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("inventory cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var items []domain.InventoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("inventory cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return items, true
}

func (s *InventoryService) store(ctx context.Context, key string, items []domain.InventoryItem) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("inventory cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *InventoryService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("inventory cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
