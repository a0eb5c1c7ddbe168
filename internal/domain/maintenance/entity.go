package maintenance

import "time"

type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
	StatusCancelled  Status = "Cancelled"
)

// Pending reports whether this maintenance still blocks the vehicle.
func (s Status) Pending() bool {
	return s == StatusScheduled || s == StatusInProgress
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Maintenance is one scheduled or completed workshop visit for a vehicle.
type Maintenance struct {
	ID            int64     `json:"id" db:"id"`
	VehicleID     int64     `json:"vehicle_id" db:"vehicle_id"`
	ScheduledDate time.Time `json:"scheduled_date" db:"scheduled_date"`
	Type          string    `json:"type" db:"type"`
	Status        Status    `json:"status" db:"status"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Loaded relation
	VehiclePlate string `json:"vehicle_plate,omitempty" db:"-"`
}
