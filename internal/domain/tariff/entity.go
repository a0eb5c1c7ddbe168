package tariff

import (
	"context"
	"time"
)

// Tariff prices a vehicle type over a validity window. When several tariffs
// cover the same range, the highest PricePerDay wins.
type Tariff struct {
	ID            int64     `json:"id" db:"id"`
	VehicleTypeID int64     `json:"vehicle_type_id" db:"vehicle_type_id"`
	StartDate     time.Time `json:"start_date" db:"start_date"`
	EndDate       time.Time `json:"end_date" db:"end_date"`
	PricePerDay   float64   `json:"price_per_day" db:"price_per_day"`
	PricePerHour  float64   `json:"price_per_hour" db:"price_per_hour"`
	Description   string    `json:"description" db:"description"`
}

type CreateTariffRequest struct {
	VehicleTypeID int64     `json:"vehicle_type_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	PricePerDay   float64   `json:"price_per_day" binding:"required,gt=0"`
	PricePerHour  float64   `json:"price_per_hour" binding:"min=0"`
	Description   string    `json:"description"`
}

type Repository interface {
	Create(ctx context.Context, t *Tariff) error
	FindByID(ctx context.Context, id int64) (*Tariff, error)
	List(ctx context.Context) ([]*Tariff, error)
	Delete(ctx context.Context, id int64) error

	// FindBestRate returns the highest price-per-day among tariffs whose
	// validity window fully covers [start, end], or ErrNotFound.
	FindBestRate(ctx context.Context, vehicleTypeID int64, start, end time.Time) (*Tariff, error)
}
