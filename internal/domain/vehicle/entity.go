package vehicle

import "time"

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusRented      Status = "Rented"
	StatusMaintenance Status = "Maintenance"
	StatusReserved    Status = "Reserved"
)

// Rentable reports whether a vehicle in this status may be offered for new
// reservations.
func (s Status) Rentable() bool {
	return s == StatusAvailable || s == StatusReserved
}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance, StatusReserved:
		return true
	}
	return false
}

// Vehicle represents one fleet vehicle.
type Vehicle struct {
	ID                  int64     `json:"id" db:"id"`
	PlateNumber         string    `json:"plate_number" db:"plate_number"`
	Make                string    `json:"make" db:"make"`
	Model               string    `json:"model" db:"model"`
	Year                int       `json:"year" db:"year"`
	Mileage             int       `json:"mileage" db:"mileage"`
	Status              Status    `json:"status" db:"status"`
	BaseRatePerDay      float64   `json:"base_rate_per_day" db:"base_rate_per_day"`
	NextMaintenanceDate time.Time `json:"next_maintenance_date" db:"next_maintenance_date"`
	VehicleTypeID       int64     `json:"vehicle_type_id" db:"vehicle_type_id"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`

	// Loaded relations
	VehicleType *Type   `json:"vehicle_type,omitempty"`
	Images      []Image `json:"images,omitempty"`
}

// Type groups vehicles and their tariffs (e.g. sedan, SUV, van).
type Type struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Image is a picture attached to a vehicle. At most one image per vehicle is
// primary; adding a new primary demotes the previous one.
type Image struct {
	ID        int64     `json:"id" db:"id"`
	VehicleID int64     `json:"vehicle_id" db:"vehicle_id"`
	ImagePath string    `json:"image_path" db:"image_path"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
