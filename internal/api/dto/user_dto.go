package dto

import (
	"time"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// DonorProfileResponse is a donor's profile.
type DonorProfileResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	BloodType    domain.BloodType `json:"bloodType"`
	LastDonation *time.Time       `json:"lastDonation"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// HospitalProfileResponse is a hospital's profile.
type HospitalProfileResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	HospitalName string    `json:"hospitalName"`
	Address      *string   `json:"address"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserResponse is the current-user view. The password digest is never included.
type UserResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email"`
	Role            domain.Role              `json:"role"`
	Phone           *string                  `json:"phone"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
	DonorProfile    *DonorProfileResponse    `json:"donorProfile"`
	HospitalProfile *HospitalProfileResponse `json:"hospitalProfile"`
	Appointments    []AppointmentResponse    `json:"appointments"`
	BloodRequests   []BloodRequestResponse   `json:"bloodRequests"`
}

// NewUserResponse maps the domain view.
func NewUserResponse(d *domain.UserDetails) UserResponse {
	resp := UserResponse{
		ID:            d.User.ID,
		Name:          d.User.Name,
		Email:         d.User.Email,
		Role:          d.User.Role,
		Phone:         d.User.Phone,
		CreatedAt:     d.User.CreatedAt,
		UpdatedAt:     d.User.UpdatedAt,
		Appointments:  NewAppointmentList(d.Appointments),
		BloodRequests: NewBloodRequestList(d.BloodRequests),
	}
	if p := d.DonorProfile; p != nil {
		resp.DonorProfile = &DonorProfileResponse{
			ID:           p.ID,
			UserID:       p.UserID,
			BloodType:    p.BloodType,
			LastDonation: p.LastDonation,
			CreatedAt:    p.CreatedAt,
		}
	}
	if p := d.HospitalProfile; p != nil {
		resp.HospitalProfile = &HospitalProfileResponse{
			ID:           p.ID,
			UserID:       p.UserID,
			HospitalName: p.HospitalName,
			Address:      p.Address,
			CreatedAt:    p.CreatedAt,
		}
	}
	return resp
}
