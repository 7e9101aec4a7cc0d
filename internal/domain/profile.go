package domain

import "time"

// DonorProfile extends a DONOR user.
type DonorProfile struct {
	ID           string
	UserID       string
	BloodType    BloodType
	LastDonation *time.Time
	CreatedAt    time.Time
}

// HospitalProfile extends a HOSPITAL user and owns inventory rows.
type HospitalProfile struct {
	ID           string
	UserID       string
	HospitalName string
	Address      *string
	CreatedAt    time.Time
}
