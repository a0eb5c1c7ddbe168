package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-service/internal/domain/vehicle"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `
	id, plate_number, make, model, year, mileage, status,
	base_rate_per_day, next_maintenance_date, vehicle_type_id, created_at
`

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID, &v.PlateNumber, &v.Make, &v.Model, &v.Year, &v.Mileage, &v.Status,
		&v.BaseRatePerDay, &v.NextMaintenanceDate, &v.VehicleTypeID, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}
	return &v, nil
}

// Create inserts a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			plate_number, make, model, year, mileage, status,
			base_rate_per_day, next_maintenance_date, vehicle_type_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.PlateNumber, v.Make, v.Model, v.Year, v.Mileage, v.Status,
		v.BaseRatePerDay, v.NextMaintenanceDate, v.VehicleTypeID,
	).Scan(&v.ID, &v.CreatedAt)

	if isUniqueViolation(err) {
		return xerrors.ErrDuplicatePlate
	}
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// FindByID retrieves a vehicle by ID.
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.db.QueryRow(ctx, query, id))
}

// FindWithDetails retrieves a vehicle with its type and images eager-loaded.
func (r *VehicleRepository) FindWithDetails(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var t vehicle.Type
	err = r.db.QueryRow(ctx,
		`SELECT id, name, description FROM vehicle_types WHERE id = $1`,
		v.VehicleTypeID,
	).Scan(&t.ID, &t.Name, &t.Description)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load vehicle type: %w", err)
	}
	if err == nil {
		v.VehicleType = &t
	}

	images, err := r.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Images = images

	return v, nil
}

// List retrieves the whole fleet, newest first.
func (r *VehicleRepository) List(ctx context.Context) ([]*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	return collectVehicles(rows)
}

// Update persists all mutable vehicle fields.
func (r *VehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return r.update(ctx, r.db, v)
}

// UpdateTx is Update inside a caller-owned transaction.
func (r *VehicleRepository) UpdateTx(ctx context.Context, tx pgx.Tx, v *vehicle.Vehicle) error {
	return r.update(ctx, tx, v)
}

func (r *VehicleRepository) update(ctx context.Context, q execer, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehicles SET
			plate_number = $1, make = $2, model = $3, year = $4, mileage = $5,
			status = $6, base_rate_per_day = $7, next_maintenance_date = $8,
			vehicle_type_id = $9
		WHERE id = $10
	`

	tag, err := q.Exec(ctx, query,
		v.PlateNumber, v.Make, v.Model, v.Year, v.Mileage,
		v.Status, v.BaseRatePerDay, v.NextMaintenanceDate,
		v.VehicleTypeID, v.ID,
	)
	if isUniqueViolation(err) {
		return xerrors.ErrDuplicatePlate
	}
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a vehicle. Reservations reference vehicles with RESTRICT,
// so a vehicle with history cannot be removed.
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return xerrors.ErrInUse
	}
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ExistsByPlateNumber checks plate uniqueness before insert for a friendlier
// error than the constraint violation.
func (r *VehicleRepository) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicles WHERE LOWER(plate_number) = LOWER($1))`,
		plateNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check plate number: %w", err)
	}
	return exists, nil
}

// FindAvailable returns rentable vehicles of a type with no conflicting
// reservation and no pending maintenance inside [start, end).
func (r *VehicleRepository) FindAvailable(ctx context.Context, vehicleTypeID int64, start, end time.Time) ([]*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`
		SELECT `+vehicleColumns+`
		FROM vehicles v
		WHERE v.vehicle_type_id = $1
		  AND v.status IN ('Available', 'Reserved')
		  AND NOT %s
		  AND NOT %s
		ORDER BY v.plate_number`,
		fmt.Sprintf(reservationConflictSQL, "v.id"),
		fmt.Sprintf(maintenanceConflictSQL, "v.id"),
	)

	rows, err := r.db.Query(ctx, query, vehicleTypeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to search available vehicles: %w", err)
	}
	defer rows.Close()

	return collectVehicles(rows)
}

func collectVehicles(rows pgx.Rows) ([]*vehicle.Vehicle, error) {
	var vehicles []*vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vehicles: %w", err)
	}
	return vehicles, nil
}

// AddImage inserts an image; when it is primary, any previous primary image
// for the vehicle is demoted in the same transaction.
func (r *VehicleRepository) AddImage(ctx context.Context, img *vehicle.Image) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if img.IsPrimary {
		_, err = tx.Exec(ctx,
			`UPDATE vehicle_images SET is_primary = FALSE WHERE vehicle_id = $1 AND is_primary`,
			img.VehicleID,
		)
		if err != nil {
			return fmt.Errorf("failed to demote primary image: %w", err)
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO vehicle_images (vehicle_id, image_path, is_primary)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		img.VehicleID, img.ImagePath, img.IsPrimary,
	).Scan(&img.ID, &img.CreatedAt)
	if isForeignKeyViolation(err) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to add vehicle image: %w", err)
	}

	return tx.Commit(ctx)
}

// ListImages retrieves all images for a vehicle, primary first.
func (r *VehicleRepository) ListImages(ctx context.Context, vehicleID int64) ([]vehicle.Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, vehicle_id, image_path, is_primary, created_at
		 FROM vehicle_images WHERE vehicle_id = $1
		 ORDER BY is_primary DESC, id`,
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle images: %w", err)
	}
	defer rows.Close()

	var images []vehicle.Image
	for rows.Next() {
		var img vehicle.Image
		if err := rows.Scan(&img.ID, &img.VehicleID, &img.ImagePath, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// FindPrimaryImage returns the primary image for a vehicle, or ErrNotFound.
func (r *VehicleRepository) FindPrimaryImage(ctx context.Context, vehicleID int64) (*vehicle.Image, error) {
	var img vehicle.Image
	err := r.db.QueryRow(ctx,
		`SELECT id, vehicle_id, image_path, is_primary, created_at
		 FROM vehicle_images WHERE vehicle_id = $1 AND is_primary`,
		vehicleID,
	).Scan(&img.ID, &img.VehicleID, &img.ImagePath, &img.IsPrimary, &img.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find primary image: %w", err)
	}
	return &img, nil
}
