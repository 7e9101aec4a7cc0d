package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// InventoryRepository manages per-hospital blood stock.
type InventoryRepository interface {
	// Upsert writes units and status for (HospitalID, BloodType), creating the
	// row if needed, and reports whether it was created.
	Upsert(ctx context.Context, item *domain.InventoryItem) (bool, error)
	// ListByHospital returns rows ordered by blood type.
	ListByHospital(ctx context.Context, hospitalID string) ([]domain.InventoryItem, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository builds the repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) Upsert(ctx context.Context, item *domain.InventoryItem) (bool, error) {
	// xmax is zero only for a freshly inserted tuple
	const query = `
        INSERT INTO blood_inventory (hospital_id, blood_type, units, status)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (hospital_id, blood_type)
        DO UPDATE SET units=EXCLUDED.units, status=EXCLUDED.status, updated_at=NOW()
        RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`
	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		item.HospitalID,
		item.BloodType,
		item.Units,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt, &inserted)
	return inserted, err
}

func (r *inventoryRepository) ListByHospital(ctx context.Context, hospitalID string) ([]domain.InventoryItem, error) {
	const query = `
        SELECT id, hospital_id, blood_type, units, status, created_at, updated_at
        FROM blood_inventory WHERE hospital_id=$1
        ORDER BY blood_type COLLATE "C" ASC`
	rows, err := r.pool.Query(ctx, query, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.HospitalID, &item.BloodType, &item.Units, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
