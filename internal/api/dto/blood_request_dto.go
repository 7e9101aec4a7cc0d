package dto

import (
	"time"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// CreateBloodRequestRequest payload. Urgency defaults to NORMAL.
type CreateBloodRequestRequest struct {
	BloodType string  `json:"bloodType"`
	Units     int     `json:"units"`
	Urgency   string  `json:"urgency"`
	Reason    *string `json:"reason"`
}

// BloodRequestResponse is a stored blood request.
type BloodRequestResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	BloodType domain.BloodType     `json:"bloodType"`
	Units     int                  `json:"units"`
	Urgency   domain.Urgency       `json:"urgency"`
	Reason    *string              `json:"reason"`
	Status    domain.RequestStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// NewBloodRequestResponse maps a domain request.
func NewBloodRequestResponse(r domain.BloodRequest) BloodRequestResponse {
	return BloodRequestResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		BloodType: r.BloodType,
		Units:     r.Units,
		Urgency:   r.Urgency,
		Reason:    r.Reason,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// NewBloodRequestList maps a slice; the result is never nil.
func NewBloodRequestList(items []domain.BloodRequest) []BloodRequestResponse {
	out := make([]BloodRequestResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewBloodRequestResponse(r))
	}
	return out
}
