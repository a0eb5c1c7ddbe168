package maintenance

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	Create(ctx context.Context, m *Maintenance) error
	CreateTx(ctx context.Context, tx pgx.Tx, m *Maintenance) error
	FindByID(ctx context.Context, id int64) (*Maintenance, error)
	List(ctx context.Context) ([]*Maintenance, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]*Maintenance, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status Status) error

	// FindCurrentPending returns the latest Scheduled/InProgress record for a
	// vehicle, or ErrNotFound.
	FindCurrentPending(ctx context.Context, vehicleID int64) (*Maintenance, error)
}
