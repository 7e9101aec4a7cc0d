package domain

import "time"

// InventoryStatus is derived from the unit count of an inventory row.
type InventoryStatus string

const (
	InventoryStatusAvailable InventoryStatus = "AVAILABLE"
	InventoryStatusLow       InventoryStatus = "LOW"
	InventoryStatusCritical  InventoryStatus = "CRITICAL"
	// InventoryStatusExpired is reserved for time-based expiry. Nothing in
	// this service assigns it.
	InventoryStatusExpired InventoryStatus = "EXPIRED"
)

// LowStockThreshold is the highest unit count still reported as LOW.
const LowStockThreshold = 5

// DeriveInventoryStatus maps a unit count to its status. Negative counts
// are treated as empty stock.
func DeriveInventoryStatus(units int) InventoryStatus {
	switch {
	case units <= 0:
		return InventoryStatusCritical
	case units <= LowStockThreshold:
		return InventoryStatusLow
	default:
		return InventoryStatusAvailable
	}
}

// Shortage reports whether the status should alert staff.
func (s InventoryStatus) Shortage() bool {
	return s == InventoryStatusLow || s == InventoryStatusCritical
}

// InventoryItem is a hospital's stock of one blood type.
type InventoryItem struct {
	ID         string
	HospitalID string
	BloodType  BloodType
	Units      int
	Status     InventoryStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
