package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// MemoryStore keeps every record in process memory. It backs the service
// when no Postgres DSN is configured and doubles as the test store. Lookups
// that find nothing return pgx.ErrNoRows like the Postgres repositories.
type MemoryStore struct {
	mu sync.RWMutex

	now func() time.Time

	users        map[string]domain.User
	emails       map[string]string
	donors       map[string]domain.DonorProfile
	hospitals    map[string]domain.HospitalProfile
	appointments []domain.Appointment
	requests     []domain.BloodRequest
	inventory    map[inventoryKey]domain.InventoryItem
}

type inventoryKey struct {
	hospitalID string
	bloodType  domain.BloodType
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:       time.Now,
		users:     map[string]domain.User{},
		emails:    map[string]string{},
		donors:    map[string]domain.DonorProfile{},
		hospitals: map[string]domain.HospitalProfile{},
		inventory: map[inventoryKey]domain.InventoryItem{},
	}
}

// Users returns the UserRepository view.
func (s *MemoryStore) Users() UserRepository { return memUsers{s} }

// Profiles returns the ProfileRepository view.
func (s *MemoryStore) Profiles() ProfileRepository { return memProfiles{s} }

// Appointments returns the AppointmentRepository view.
func (s *MemoryStore) Appointments() AppointmentRepository { return memAppointments{s} }

// BloodRequests returns the BloodRequestRepository view.
func (s *MemoryStore) BloodRequests() BloodRequestRepository { return memRequests{s} }

// Inventory returns the InventoryRepository view.
func (s *MemoryStore) Inventory() InventoryRepository { return memInventory{s} }

type memUsers struct{ s *MemoryStore }

func (r memUsers) CreateAccount(_ context.Context, acct *domain.Account) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	user := acct.User
	if _, exists := s.emails[user.Email]; exists {
		return ErrDuplicateEmail
	}

	now := s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	switch {
	case user.Role == domain.RoleDonor && acct.Donor != nil:
		acct.Donor.ID = uuid.NewString()
		acct.Donor.UserID = user.ID
		acct.Donor.CreatedAt = now
		s.donors[user.ID] = *acct.Donor
	case user.Role == domain.RoleHospital && acct.Hospital != nil:
		acct.Hospital.ID = uuid.NewString()
		acct.Hospital.UserID = user.ID
		acct.Hospital.CreatedAt = now
		s.hospitals[user.ID] = *acct.Hospital
	}

	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.emails[email]
	r.s.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = hash
	user.UpdatedAt = r.s.now()
	r.s.users[id] = user
	return nil
}

type memProfiles struct{ s *MemoryStore }

func (r memProfiles) GetDonorByUserID(_ context.Context, userID string) (*domain.DonorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.donors[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r memProfiles) GetHospitalByUserID(_ context.Context, userID string) (*domain.HospitalProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.hospitals[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

type memAppointments struct{ s *MemoryStore }

func (r memAppointments) Create(_ context.Context, appt *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	appt.ID = uuid.NewString()
	appt.CreatedAt = r.s.now()
	r.s.appointments = append(r.s.appointments, *appt)
	return nil
}

func (r memAppointments) ListByUser(_ context.Context, userID string, limit int) ([]domain.Appointment, error) {
	r.s.mu.RLock()
	result := []domain.Appointment{}
	// walk backwards so equal keys keep newest-inserted first after the stable sort
	for i := len(r.s.appointments) - 1; i >= 0; i-- {
		if a := r.s.appointments[i]; a.UserID == userID {
			result = append(result, a)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return truncate(result, limit), nil
}

type memRequests struct{ s *MemoryStore }

func (r memRequests) Create(_ context.Context, req *domain.BloodRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = uuid.NewString()
	req.CreatedAt = r.s.now()
	r.s.requests = append(r.s.requests, *req)
	return nil
}

func (r memRequests) ListByUser(_ context.Context, userID string, limit int) ([]domain.BloodRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.BloodRequest{}
	for i := len(r.s.requests) - 1; i >= 0; i-- {
		if br := r.s.requests[i]; br.UserID == userID {
			result = append(result, br)
		}
	}
	return truncate(result, limit), nil
}

type memInventory struct{ s *MemoryStore }

func (r memInventory) Upsert(_ context.Context, item *domain.InventoryItem) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := inventoryKey{hospitalID: item.HospitalID, bloodType: item.BloodType}
	now := r.s.now()
	existing, found := r.s.inventory[key]
	if found {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	} else {
		item.ID = uuid.NewString()
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	r.s.inventory[key] = *item
	return !found, nil
}

func (r memInventory) ListByHospital(_ context.Context, hospitalID string) ([]domain.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.InventoryItem{}
	for key, item := range r.s.inventory {
		if key.hospitalID == hospitalID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BloodType < result[j].BloodType })
	return result, nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
