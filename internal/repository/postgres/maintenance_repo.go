package postgres

import (
	"context"
	"errors"
	"fmt"

	"carrental-service/internal/domain/maintenance"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceRepository struct {
	db *pgxpool.Pool
}

func NewMaintenanceRepository(db *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

const insertMaintenanceSQL = `INSERT INTO maintenance_records
	(vehicle_id, scheduled_date, type, status, notes)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

func (r *MaintenanceRepository) Create(ctx context.Context, m *maintenance.Maintenance) error {
	return r.create(ctx, r.db, m)
}

func (r *MaintenanceRepository) CreateTx(ctx context.Context, tx pgx.Tx, m *maintenance.Maintenance) error {
	return r.create(ctx, tx, m)
}

func (r *MaintenanceRepository) create(ctx context.Context, q rowQueryer, m *maintenance.Maintenance) error {
	err := q.QueryRow(ctx, insertMaintenanceSQL,
		m.VehicleID, m.ScheduledDate, m.Type, m.Status, m.Notes,
	).Scan(&m.ID, &m.CreatedAt)
	if isForeignKeyViolation(err) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id int64) (*maintenance.Maintenance, error) {
	var m maintenance.Maintenance
	err := r.db.QueryRow(ctx,
		`SELECT m.id, m.vehicle_id, m.scheduled_date, m.type, m.status, m.notes, m.created_at,
			v.plate_number
		 FROM maintenance_records m
		 JOIN vehicles v ON v.id = m.vehicle_id
		 WHERE m.id = $1`, id,
	).Scan(&m.ID, &m.VehicleID, &m.ScheduledDate, &m.Type, &m.Status, &m.Notes, &m.CreatedAt, &m.VehiclePlate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance record: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceRepository) List(ctx context.Context) ([]*maintenance.Maintenance, error) {
	return r.list(ctx, ``)
}

func (r *MaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]*maintenance.Maintenance, error) {
	return r.list(ctx, `WHERE m.vehicle_id = $1`, vehicleID)
}

func (r *MaintenanceRepository) list(ctx context.Context, where string, args ...any) ([]*maintenance.Maintenance, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.vehicle_id, m.scheduled_date, m.type, m.status, m.notes, m.created_at,
			v.plate_number
		 FROM maintenance_records m
		 JOIN vehicles v ON v.id = m.vehicle_id
		 `+where+`
		 ORDER BY m.scheduled_date DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}
	defer rows.Close()

	var out []*maintenance.Maintenance
	for rows.Next() {
		var m maintenance.Maintenance
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.ScheduledDate, &m.Type, &m.Status, &m.Notes, &m.CreatedAt, &m.VehiclePlate); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status maintenance.Status) error {
	tag, err := tx.Exec(ctx,
		`UPDATE maintenance_records SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update maintenance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) FindCurrentPending(ctx context.Context, vehicleID int64) (*maintenance.Maintenance, error) {
	var m maintenance.Maintenance
	err := r.db.QueryRow(ctx,
		`SELECT m.id, m.vehicle_id, m.scheduled_date, m.type, m.status, m.notes, m.created_at,
			v.plate_number
		 FROM maintenance_records m
		 JOIN vehicles v ON v.id = m.vehicle_id
		 WHERE m.vehicle_id = $1 AND m.status IN ('Scheduled', 'InProgress')
		 ORDER BY m.scheduled_date DESC
		 LIMIT 1`, vehicleID,
	).Scan(&m.ID, &m.VehicleID, &m.ScheduledDate, &m.Type, &m.Status, &m.Notes, &m.CreatedAt, &m.VehiclePlate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending maintenance: %w", err)
	}
	return &m, nil
}
