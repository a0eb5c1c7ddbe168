package postgres

import (
	"context"
	"errors"
	"fmt"

	"carrental-service/internal/domain/vehicle"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleTypeRepository struct {
	db *pgxpool.Pool
}

func NewVehicleTypeRepository(db *pgxpool.Pool) *VehicleTypeRepository {
	return &VehicleTypeRepository{db: db}
}

func (r *VehicleTypeRepository) Create(ctx context.Context, t *vehicle.Type) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO vehicle_types (name, description) VALUES ($1, $2) RETURNING id`,
		t.Name, t.Description,
	).Scan(&t.ID)
	if isUniqueViolation(err) {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create vehicle type: %w", err)
	}
	return nil
}

func (r *VehicleTypeRepository) FindByID(ctx context.Context, id int64) (*vehicle.Type, error) {
	var t vehicle.Type
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description FROM vehicle_types WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle type: %w", err)
	}
	return &t, nil
}

func (r *VehicleTypeRepository) List(ctx context.Context) ([]*vehicle.Type, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM vehicle_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle types: %w", err)
	}
	defer rows.Close()

	var types []*vehicle.Type
	for rows.Next() {
		var t vehicle.Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle type: %w", err)
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

func (r *VehicleTypeRepository) Update(ctx context.Context, t *vehicle.Type) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE vehicle_types SET name = $1, description = $2 WHERE id = $3`,
		t.Name, t.Description, t.ID,
	)
	if isUniqueViolation(err) {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to update vehicle type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete fails with ErrInUse while vehicles or tariffs still reference the type.
func (r *VehicleTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicle_types WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return xerrors.ErrInUse
	}
	if err != nil {
		return fmt.Errorf("failed to delete vehicle type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
