package vehicle

import "time"

type CreateVehicleRequest struct {
	PlateNumber         string    `json:"plate_number" binding:"required,max=20"`
	Make                string    `json:"make" binding:"required,max=100"`
	Model               string    `json:"model" binding:"required,max=100"`
	Year                int       `json:"year" binding:"required,min=1950,max=2100"`
	Mileage             int       `json:"mileage" binding:"min=0"`
	BaseRatePerDay      float64   `json:"base_rate_per_day" binding:"required,gt=0"`
	NextMaintenanceDate time.Time `json:"next_maintenance_date"`
	VehicleTypeID       int64     `json:"vehicle_type_id" binding:"required"`
}

type UpdateVehicleRequest struct {
	PlateNumber         *string    `json:"plate_number,omitempty"`
	Make                *string    `json:"make,omitempty"`
	Model               *string    `json:"model,omitempty"`
	Year                *int       `json:"year,omitempty"`
	Mileage             *int       `json:"mileage,omitempty"`
	Status              *Status    `json:"status,omitempty"`
	BaseRatePerDay      *float64   `json:"base_rate_per_day,omitempty"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date,omitempty"`
	VehicleTypeID       *int64     `json:"vehicle_type_id,omitempty"`
}

// SearchRequest asks for vehicles of a type free over [Start, End).
type SearchRequest struct {
	VehicleTypeID int64     `form:"vehicle_type_id" binding:"required"`
	Start         time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End           time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
}

type AddImageRequest struct {
	ImagePath string `json:"image_path" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
}

type CreateTypeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}
