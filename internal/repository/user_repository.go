package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// ErrDuplicateEmail is returned when an account with the email exists.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = "23505"

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	// CreateAccount stores the user and its role profile atomically.
	CreateAccount(ctx context.Context, acct *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) CreateAccount(ctx context.Context, acct *domain.Account) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		user := acct.User
		const insertUser = `
        INSERT INTO users (name, email, password_hash, role, phone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertUser,
			user.Name,
			user.Email,
			user.PasswordHash,
			user.Role,
			user.Phone,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return err
		}

		switch user.Role {
		case domain.RoleDonor:
			donor := acct.Donor
			donor.UserID = user.ID
			const insertDonor = `
            INSERT INTO donor_profiles (user_id, blood_type)
            VALUES ($1, $2)
            RETURNING id, created_at`
			return tx.QueryRow(ctx, insertDonor, donor.UserID, donor.BloodType).Scan(&donor.ID, &donor.CreatedAt)
		case domain.RoleHospital:
			hospital := acct.Hospital
			hospital.UserID = user.ID
			const insertHospital = `
            INSERT INTO hospital_profiles (user_id, hospital_name, address)
            VALUES ($1, $2, $3)
            RETURNING id, created_at`
			return tx.QueryRow(ctx, insertHospital, hospital.UserID, hospital.HospitalName, hospital.Address).
				Scan(&hospital.ID, &hospital.CreatedAt)
		default:
			return fmt.Errorf("unknown role %q", user.Role)
		}
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, phone, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, phone, created_at, updated_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	const query = `
        UPDATE users SET password_hash=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
