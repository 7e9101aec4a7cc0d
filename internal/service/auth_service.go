package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/domain"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/repository"
	apperrors "github.com/spec-kit/blood-bank-service/pkg/util/errorutil"
)

const (
	msgRegisterRequired   = "Name, email, and password are required"
	msgLoginRequired      = "Email and password are required"
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidRole        = "Invalid role"
	msgInvalidBloodType   = "Invalid blood type"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	codec      auth.Codec
	hasher     *auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Codec      auth.Codec
	Hasher     *auth.PasswordHasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput is the registration payload. Role-specific fields are
// ignored for the other role.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	Phone        *string
	BloodType    string
	HospitalName string
	Address      *string
}

// AuthResult is a signed-in user and its bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		codec:      deps.Codec,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Register creates a user with its role profile and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError(msgRegisterRequired)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, apperrors.NewValidationError(msgInvalidRole)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewValidationError(msgEmailTaken)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(fmt.Errorf("lookup email: %w", err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        in.Phone,
	}
	acct := &domain.Account{User: user}
	switch role {
	case domain.RoleDonor:
		bloodType := domain.DefaultDonorBloodType
		if in.BloodType != "" {
			if bloodType, err = domain.ParseBloodType(in.BloodType); err != nil {
				return nil, apperrors.NewValidationError(msgInvalidBloodType)
			}
		}
		acct.Donor = &domain.DonorProfile{BloodType: bloodType}
	case domain.RoleHospital:
		name := in.HospitalName
		if name == "" {
			name = in.Name
		}
		acct.Hospital = &domain.HospitalProfile{HospitalName: name, Address: in.Address}
	}

	if err := s.users.CreateAccount(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewValidationError(msgEmailTaken)
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("create account: %w", err))
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email: user.Email,
		Role:  user.Role,
	}))
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. Digests stored with an
// outdated scheme are replaced after a successful match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError(msgLoginRequired)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("lookup user: %w", err))
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, password)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.Warn("password rehash failed", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	user.PasswordHash = hash
}

func (s *AuthService) issue(user *domain.User) (string, error) {
	token, err := s.codec.Encode(auth.Claims{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("encode token: %w", err))
	}
	return token, nil
}
