package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// BloodRequestRepository manages blood requests.
type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	// ListByUser returns newest first; limit <= 0 returns all rows.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.BloodRequest, error)
}

type bloodRequestRepository struct {
	pool *pgxpool.Pool
}

// NewBloodRequestRepository builds the repository.
func NewBloodRequestRepository(pool *pgxpool.Pool) BloodRequestRepository {
	return &bloodRequestRepository{pool: pool}
}

func (r *bloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	const query = `
        INSERT INTO blood_requests (user_id, blood_type, units, urgency, reason, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		req.UserID,
		req.BloodType,
		req.Units,
		req.Urgency,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *bloodRequestRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.BloodRequest, error) {
	const query = `
        SELECT id, user_id, blood_type, units, urgency, reason, status, created_at
        FROM blood_requests WHERE user_id=$1
        ORDER BY created_at DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limitArg(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.BloodRequest{}
	for rows.Next() {
		var br domain.BloodRequest
		if err := rows.Scan(&br.ID, &br.UserID, &br.BloodType, &br.Units, &br.Urgency, &br.Reason, &br.Status, &br.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, br)
	}
	return result, rows.Err()
}
