package domain

import "fmt"

// BloodType is an ABO/Rh group label.
type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// DefaultDonorBloodType is assigned when a donor registers without one.
const DefaultDonorBloodType = BloodTypeOPos

// ParseBloodType validates a wire value.
func ParseBloodType(raw string) (BloodType, error) {
	bt := BloodType(raw)
	switch bt {
	case BloodTypeAPos, BloodTypeANeg, BloodTypeBPos, BloodTypeBNeg,
		BloodTypeABPos, BloodTypeABNeg, BloodTypeOPos, BloodTypeONeg:
		return bt, nil
	default:
		return "", fmt.Errorf("unknown blood type %q", raw)
	}
}
