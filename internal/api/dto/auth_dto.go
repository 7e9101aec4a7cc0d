package dto

import "github.com/spec-kit/blood-bank-service/internal/domain"

// RegisterRequest payload for new accounts. Role defaults to DONOR.
type RegisterRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone"`
	BloodType    string  `json:"bloodType"`
	HospitalName string  `json:"hospitalName"`
	Address      *string `json:"address"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the public slice of a user returned with a token.
type AuthUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// NewAuthResponse builds the auth payload.
func NewAuthResponse(user *domain.User, token string) AuthResponse {
	return AuthResponse{
		User:  AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		Token: token,
	}
}
