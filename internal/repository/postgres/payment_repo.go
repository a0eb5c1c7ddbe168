package postgres

import (
	"context"
	"fmt"

	"carrental-service/internal/domain/reservation"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *reservation.Payment) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO payments (reservation_id, amount, method, status, paid_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.ReservationID, p.Amount, p.Method, p.Status, p.PaidAt,
	).Scan(&p.ID)
	if isForeignKeyViolation(err) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, reservationID int64) ([]reservation.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, reservation_id, amount, method, status, paid_at
		 FROM payments WHERE reservation_id = $1 ORDER BY paid_at`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []reservation.Payment
	for rows.Next() {
		var p reservation.Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.Status, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
