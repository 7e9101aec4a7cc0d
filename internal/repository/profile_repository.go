package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// ProfileRepository reads role profiles. Both lookups return pgx.ErrNoRows
// when the user has no profile of that kind.
type ProfileRepository interface {
	GetDonorByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error)
	GetHospitalByUserID(ctx context.Context, userID string) (*domain.HospitalProfile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository builds the repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetDonorByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error) {
	const query = `
        SELECT id, user_id, blood_type, last_donation, created_at
        FROM donor_profiles WHERE user_id=$1`
	var p domain.DonorProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.BloodType,
		&p.LastDonation,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetHospitalByUserID(ctx context.Context, userID string) (*domain.HospitalProfile, error) {
	const query = `
        SELECT id, user_id, hospital_name, address, created_at
        FROM hospital_profiles WHERE user_id=$1`
	var p domain.HospitalProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.HospitalName,
		&p.Address,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
