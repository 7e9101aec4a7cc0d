package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Set groups the repositories a single backend provides.
type Set struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Appointments  AppointmentRepository
	BloodRequests BloodRequestRepository
	Inventory     InventoryRepository
}

// NewPostgresSet builds every repository on pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Users:         NewUserRepository(pool),
		Profiles:      NewProfileRepository(pool),
		Appointments:  NewAppointmentRepository(pool),
		BloodRequests: NewBloodRequestRepository(pool),
		Inventory:     NewInventoryRepository(pool),
	}
}

// Set returns the store's repositories.
func (s *MemoryStore) Set() Set {
	return Set{
		Users:         s.Users(),
		Profiles:      s.Profiles(),
		Appointments:  s.Appointments(),
		BloodRequests: s.BloodRequests(),
		Inventory:     s.Inventory(),
	}
}
