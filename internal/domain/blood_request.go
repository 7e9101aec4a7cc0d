package domain

import (
	"fmt"
	"time"
)

// Urgency is a priority tag on a blood request. It is independent of
// inventory status.
type Urgency string

const (
	UrgencyNormal   Urgency = "NORMAL"
	UrgencyUrgent   Urgency = "URGENT"
	UrgencyCritical Urgency = "CRITICAL"
)

// ParseUrgency validates a wire value; empty means NORMAL.
func ParseUrgency(raw string) (Urgency, error) {
	switch Urgency(raw) {
	case "":
		return UrgencyNormal, nil
	case UrgencyNormal, UrgencyUrgent, UrgencyCritical:
		return Urgency(raw), nil
	default:
		return "", fmt.Errorf("unknown urgency %q", raw)
	}
}

// RequestStatus tracks fulfilment of a blood request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusFulfilled RequestStatus = "FULFILLED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// BloodRequest asks for units of a blood type.
type BloodRequest struct {
	ID        string
	UserID    string
	BloodType BloodType
	Units     int
	Urgency   Urgency
	Reason    *string
	Status    RequestStatus
	CreatedAt time.Time
}
