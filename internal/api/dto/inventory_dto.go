package dto

import (
	"time"

	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// UpsertInventoryRequest sets the unit count for a blood type. Units may be
// zero, so absence is tracked with a pointer.
type UpsertInventoryRequest struct {
	BloodType string `json:"bloodType"`
	Units     *int   `json:"units"`
}

// InventoryResponse is one inventory row.
type InventoryResponse struct {
	ID         string                 `json:"id"`
	HospitalID string                 `json:"hospitalId"`
	BloodType  domain.BloodType       `json:"bloodType"`
	Units      int                    `json:"units"`
	Status     domain.InventoryStatus `json:"status"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// NewInventoryResponse maps a domain row.
func NewInventoryResponse(i domain.InventoryItem) InventoryResponse {
	return InventoryResponse{
		ID:         i.ID,
		HospitalID: i.HospitalID,
		BloodType:  i.BloodType,
		Units:      i.Units,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

// NewInventoryList maps a slice; the result is never nil.
func NewInventoryList(items []domain.InventoryItem) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewInventoryResponse(i))
	}
	return out
}
