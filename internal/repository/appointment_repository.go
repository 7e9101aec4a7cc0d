package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// AppointmentRepository manages donation appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	// ListByUser returns newest dates first; limit <= 0 returns all rows.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository builds the repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (user_id, date, time, location, notes, blood_type, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		appt.UserID,
		appt.Date,
		appt.Time,
		appt.Location,
		appt.Notes,
		appt.BloodType,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt)
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Appointment, error) {
	const query = `
        SELECT id, user_id, date, time, location, notes, blood_type, status, created_at
        FROM appointments WHERE user_id=$1
        ORDER BY date DESC, created_at DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limitArg(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Appointment{}
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &a.Location, &a.Notes, &a.BloodType, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// limitArg maps "no limit" to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
