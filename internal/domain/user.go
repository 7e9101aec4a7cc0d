package domain

import (
	"fmt"
	"time"
)

// Role discriminates account kinds.
type Role string

const (
	RoleDonor    Role = "DONOR"
	RoleHospital Role = "HOSPITAL"
)

// ParseRole maps a wire value to a Role. An empty value yields RoleDonor.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "":
		return RoleDonor, nil
	case RoleDonor:
		return RoleDonor, nil
	case RoleHospital:
		return RoleHospital, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleHospital:
		return true
	default:
		return false
	}
}

// User is an account able to sign in.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account bundles a new user with its role profile. Exactly one of
// Donor or Hospital is set, matching User.Role.
type Account struct {
	User     *User
	Donor    *DonorProfile
	Hospital *HospitalProfile
}

// UserDetails is the current-user view with profile and recent activity.
type UserDetails struct {
	User            User
	DonorProfile    *DonorProfile
	HospitalProfile *HospitalProfile
	Appointments    []Appointment
	BloodRequests   []BloodRequest
}
