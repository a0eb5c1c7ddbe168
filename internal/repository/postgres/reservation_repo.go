package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-service/internal/domain/reservation"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, reference, client_id, vehicle_id, requested_start, requested_end,
	actual_start, actual_end, status, total_amount, deposit_amount, created_by_user_id, created_at`

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var res reservation.Reservation
	err := row.Scan(
		&res.ID, &res.Reference, &res.ClientID, &res.VehicleID,
		&res.RequestedStart, &res.RequestedEnd, &res.ActualStart, &res.ActualEnd,
		&res.Status, &res.TotalAmount, &res.DepositAmount,
		&res.CreatedByUserID, &res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}
	return &res, nil
}

const insertReservationSQL = `INSERT INTO reservations
	(reference, client_id, vehicle_id, requested_start, requested_end, status,
	 total_amount, deposit_amount, created_by_user_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	return r.create(ctx, r.db, res)
}

func (r *ReservationRepository) CreateTx(ctx context.Context, tx pgx.Tx, res *reservation.Reservation) error {
	return r.create(ctx, tx, res)
}

type rowQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *ReservationRepository) create(ctx context.Context, q rowQueryer, res *reservation.Reservation) error {
	err := q.QueryRow(ctx, insertReservationSQL,
		res.Reference, res.ClientID, res.VehicleID,
		res.RequestedStart, res.RequestedEnd, res.Status,
		res.TotalAmount, res.DepositAmount, res.CreatedByUserID,
	).Scan(&res.ID, &res.CreatedAt)
	if isUniqueViolation(err) {
		return xerrors.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return scanReservation(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
}

// FindWithDetails loads the reservation together with the client name, the
// vehicle label and its payment history.
func (r *ReservationRepository) FindWithDetails(ctx context.Context, id int64) (*reservation.Reservation, error) {
	var res reservation.Reservation
	var vehicleLabel *string
	err := r.db.QueryRow(ctx,
		`SELECT r.id, r.reference, r.client_id, r.vehicle_id, r.requested_start, r.requested_end,
			r.actual_start, r.actual_end, r.status, r.total_amount, r.deposit_amount,
			r.created_by_user_id, r.created_at,
			c.first_name || ' ' || c.last_name,
			v.make || ' ' || v.model || ' (' || v.plate_number || ')'
		 FROM reservations r
		 JOIN clients c ON c.id = r.client_id
		 LEFT JOIN vehicles v ON v.id = r.vehicle_id
		 WHERE r.id = $1`, id,
	).Scan(
		&res.ID, &res.Reference, &res.ClientID, &res.VehicleID,
		&res.RequestedStart, &res.RequestedEnd, &res.ActualStart, &res.ActualEnd,
		&res.Status, &res.TotalAmount, &res.DepositAmount,
		&res.CreatedByUserID, &res.CreatedAt,
		&res.ClientName, &vehicleLabel,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation details: %w", err)
	}
	if vehicleLabel != nil {
		res.VehicleLabel = *vehicleLabel
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, reservation_id, amount, method, status, paid_at
		 FROM payments WHERE reservation_id = $1 ORDER BY paid_at`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p reservation.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		res.Payments = append(res.Payments, p)
	}
	return &res, rows.Err()
}

// ListActive returns every reservation that has not reached a terminal status,
// newest first, with names joined in for listing screens.
func (r *ReservationRepository) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.list(ctx,
		`WHERE r.status NOT IN ('Completed', 'Cancelled', 'NoShow')`)
}

func (r *ReservationRepository) ListByClient(ctx context.Context, clientID int64) ([]*reservation.Reservation, error) {
	return r.list(ctx, `WHERE r.client_id = $1`, clientID)
}

func (r *ReservationRepository) list(ctx context.Context, where string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.reference, r.client_id, r.vehicle_id, r.requested_start, r.requested_end,
			r.actual_start, r.actual_end, r.status, r.total_amount, r.deposit_amount,
			r.created_by_user_id, r.created_at,
			c.first_name || ' ' || c.last_name,
			COALESCE(v.make || ' ' || v.model || ' (' || v.plate_number || ')', '')
		 FROM reservations r
		 JOIN clients c ON c.id = r.client_id
		 LEFT JOIN vehicles v ON v.id = r.vehicle_id
		 `+where+`
		 ORDER BY r.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		var res reservation.Reservation
		if err := rows.Scan(
			&res.ID, &res.Reference, &res.ClientID, &res.VehicleID,
			&res.RequestedStart, &res.RequestedEnd, &res.ActualStart, &res.ActualEnd,
			&res.Status, &res.TotalAmount, &res.DepositAmount,
			&res.CreatedByUserID, &res.CreatedAt,
			&res.ClientName, &res.VehicleLabel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

func (r *ReservationRepository) UpdateTx(ctx context.Context, tx pgx.Tx, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx,
		`UPDATE reservations SET
			vehicle_id = $1, requested_start = $2, requested_end = $3,
			actual_start = $4, actual_end = $5, status = $6,
			total_amount = $7, deposit_amount = $8, created_by_user_id = $9
		 WHERE id = $10`,
		res.VehicleID, res.RequestedStart, res.RequestedEnd,
		res.ActualStart, res.ActualEnd, res.Status,
		res.TotalAmount, res.DepositAmount, res.CreatedByUserID, res.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Blocker predicates for a vehicle in [start, end): overlapping reservations
// that are still live, plus maintenance still pending inside the window.
// Intervals are half-open, so back-to-back bookings do not collide. The %s
// placeholder is the embedding query's vehicle id expression; $2 and $3 are
// the window bounds. Every conflict check in this package embeds these two
// fragments, nothing re-derives the conditions.
const (
	reservationConflictSQL = `EXISTS (
		SELECT 1 FROM reservations r
		WHERE r.vehicle_id = %s
		  AND r.status NOT IN ('Completed', 'Cancelled', 'NoShow')
		  AND r.requested_start < $3 AND $2 < r.requested_end
	)`
	maintenanceConflictSQL = `EXISTS (
		SELECT 1 FROM maintenance_records m
		WHERE m.vehicle_id = %s
		  AND m.status IN ('Scheduled', 'InProgress')
		  AND m.scheduled_date >= $2 AND m.scheduled_date < $3
	)`
)

var availabilitySQL = fmt.Sprintf(`SELECT NOT %s AND NOT %s`,
	fmt.Sprintf(reservationConflictSQL, "$1"),
	fmt.Sprintf(maintenanceConflictSQL, "$1"),
)

func (r *ReservationRepository) IsVehicleAvailable(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	return r.isAvailable(ctx, r.db, vehicleID, start, end)
}

func (r *ReservationRepository) IsVehicleAvailableTx(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error) {
	return r.isAvailable(ctx, tx, vehicleID, start, end)
}

func (r *ReservationRepository) isAvailable(ctx context.Context, q rowQueryer, vehicleID int64, start, end time.Time) (bool, error) {
	var free bool
	if err := q.QueryRow(ctx, availabilitySQL, vehicleID, start, end).Scan(&free); err != nil {
		return false, fmt.Errorf("failed to check vehicle availability: %w", err)
	}
	return free, nil
}

// LockVehicleTx takes a transaction-scoped advisory lock on the vehicle id.
// Two transactions booking the same vehicle queue here, so the availability
// check and the insert behind it run one at a time per vehicle.
func (r *ReservationRepository) LockVehicleTx(ctx context.Context, tx pgx.Tx, vehicleID int64) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, vehicleID); err != nil {
		return fmt.Errorf("failed to lock vehicle %d: %w", vehicleID, err)
	}
	return nil
}
