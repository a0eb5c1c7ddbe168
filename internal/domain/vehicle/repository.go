package vehicle

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	// Vehicle CRUD
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	FindWithDetails(ctx context.Context, id int64) (*Vehicle, error)
	List(ctx context.Context) ([]*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	UpdateTx(ctx context.Context, tx pgx.Tx, v *Vehicle) error
	Delete(ctx context.Context, id int64) error
	ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error)

	// Availability: vehicles of the given type with no overlapping
	// non-terminal reservation and no pending maintenance inside [start, end).
	FindAvailable(ctx context.Context, vehicleTypeID int64, start, end time.Time) ([]*Vehicle, error)

	// Images
	AddImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, vehicleID int64) ([]Image, error)
	FindPrimaryImage(ctx context.Context, vehicleID int64) (*Image, error)
}

type TypeRepository interface {
	Create(ctx context.Context, t *Type) error
	FindByID(ctx context.Context, id int64) (*Type, error)
	List(ctx context.Context) ([]*Type, error)
	Update(ctx context.Context, t *Type) error
	Delete(ctx context.Context, id int64) error
}
