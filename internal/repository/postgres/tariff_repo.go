package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-service/internal/domain/tariff"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TariffRepository struct {
	db *pgxpool.Pool
}

func NewTariffRepository(db *pgxpool.Pool) *TariffRepository {
	return &TariffRepository{db: db}
}

const tariffColumns = `id, vehicle_type_id, start_date, end_date, price_per_day, price_per_hour, description`

func scanTariff(row pgx.Row) (*tariff.Tariff, error) {
	var t tariff.Tariff
	err := row.Scan(
		&t.ID, &t.VehicleTypeID, &t.StartDate, &t.EndDate,
		&t.PricePerDay, &t.PricePerHour, &t.Description,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tariff: %w", err)
	}
	return &t, nil
}

func (r *TariffRepository) Create(ctx context.Context, t *tariff.Tariff) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tariffs (vehicle_type_id, start_date, end_date, price_per_day, price_per_hour, description)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		t.VehicleTypeID, t.StartDate, t.EndDate, t.PricePerDay, t.PricePerHour, t.Description,
	).Scan(&t.ID)
	if isForeignKeyViolation(err) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create tariff: %w", err)
	}
	return nil
}

func (r *TariffRepository) FindByID(ctx context.Context, id int64) (*tariff.Tariff, error) {
	return scanTariff(r.db.QueryRow(ctx,
		`SELECT `+tariffColumns+` FROM tariffs WHERE id = $1`, id))
}

func (r *TariffRepository) List(ctx context.Context) ([]*tariff.Tariff, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tariffColumns+` FROM tariffs ORDER BY vehicle_type_id, start_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tariffs: %w", err)
	}
	defer rows.Close()

	var tariffs []*tariff.Tariff
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}

func (r *TariffRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tariffs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tariff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// FindBestRate returns the highest-priced tariff whose validity window fully
// covers [start, end].
func (r *TariffRepository) FindBestRate(ctx context.Context, vehicleTypeID int64, start, end time.Time) (*tariff.Tariff, error) {
	return scanTariff(r.db.QueryRow(ctx,
		`SELECT `+tariffColumns+`
		 FROM tariffs
		 WHERE vehicle_type_id = $1 AND start_date <= $2 AND end_date >= $3
		 ORDER BY price_per_day DESC
		 LIMIT 1`,
		vehicleTypeID, start, end,
	))
}
