package court

import "time"

// Court is a bookable playing surface owned by a facility.
type Court struct {
	ID          string    `json:"id"`
	FacilityID  string    `json:"facility_id"`
	Name        string    `json:"name"`
	Sport       string    `json:"sport"`
	SlotMinutes int       `json:"slot_minutes"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
