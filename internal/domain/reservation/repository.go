package reservation

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	CreateTx(ctx context.Context, tx pgx.Tx, r *Reservation) error
	FindByID(ctx context.Context, id int64) (*Reservation, error)
	FindWithDetails(ctx context.Context, id int64) (*Reservation, error)
	ListActive(ctx context.Context) ([]*Reservation, error)
	ListByClient(ctx context.Context, clientID int64) ([]*Reservation, error)
	UpdateTx(ctx context.Context, tx pgx.Tx, r *Reservation) error

	// IsVehicleAvailable is the single authority on conflicts: it considers
	// both overlapping non-terminal reservations (half-open interval test)
	// and pending maintenance scheduled inside [start, end).
	IsVehicleAvailable(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error)
	IsVehicleAvailableTx(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error)

	// LockVehicleTx serializes concurrent bookings of one vehicle for the
	// duration of the transaction (pg_advisory_xact_lock).
	LockVehicleTx(ctx context.Context, tx pgx.Tx, vehicleID int64) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByReservation(ctx context.Context, reservationID int64) ([]Payment, error)
}
