package postgres

import (
	"context"
	"fmt"
	"time"

	"carrental-service/internal/domain/report"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Summary(ctx context.Context, start, end time.Time) (*report.Summary, error) {
	s := &report.Summary{StartDate: start, EndDate: end}
	err := r.db.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(r.total_amount), 0),
			COALESCE((
				SELECT SUM(p.amount) FROM payments p
				JOIN reservations pr ON pr.id = p.reservation_id
				WHERE pr.created_at >= $1 AND pr.created_at <= $2
				  AND pr.status <> 'Cancelled'
				  AND p.status = 'Completed'
			), 0),
			COUNT(*)
		 FROM reservations r
		 WHERE r.created_at >= $1 AND r.created_at <= $2
		   AND r.status <> 'Cancelled'`,
		start, end,
	).Scan(&s.TotalReservationRevenue, &s.TotalPaymentsReceived, &s.TotalReservationsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary report: %w", err)
	}
	return s, nil
}

func (r *ReportRepository) DetailLines(ctx context.Context, start, end time.Time) ([]report.DetailLine, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.reference, r.created_at,
			c.first_name || ' ' || c.last_name,
			COALESCE(v.make || ' ' || v.model || ' (' || v.plate_number || ')', ''),
			r.total_amount,
			COALESCE((
				SELECT SUM(p.amount) FROM payments p
				WHERE p.reservation_id = r.id AND p.status = 'Completed'
			), 0),
			r.status
		 FROM reservations r
		 JOIN clients c ON c.id = r.client_id
		 LEFT JOIN vehicles v ON v.id = r.vehicle_id
		 WHERE r.created_at >= $1 AND r.created_at <= $2
		   AND r.status <> 'Cancelled'
		 ORDER BY r.created_at`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query report lines: %w", err)
	}
	defer rows.Close()

	var lines []report.DetailLine
	for rows.Next() {
		var l report.DetailLine
		if err := rows.Scan(
			&l.ReservationID, &l.Reference, &l.ReservationDate,
			&l.ClientFullName, &l.VehicleLabel,
			&l.TotalPrice, &l.AmountPaid, &l.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *ReportRepository) DashboardStats(ctx context.Context) (*report.DashboardStats, error) {
	var s report.DashboardStats
	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM vehicles),
			(SELECT COUNT(*) FROM vehicles WHERE status = 'Available'),
			(SELECT COUNT(*) FROM reservations WHERE status IN ('Confirmed', 'Active')),
			(SELECT COUNT(*) FROM maintenance_records WHERE status IN ('Scheduled', 'InProgress'))`,
	).Scan(&s.TotalVehicles, &s.AvailableVehicles, &s.ActiveReservations, &s.PendingMaintenances)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard stats: %w", err)
	}
	return &s, nil
}
