package report

import (
	"context"
	"time"
)

type Repository interface {
	// Summary totals revenue and payments for reservations created in
	// [start, end].
	Summary(ctx context.Context, start, end time.Time) (*Summary, error)

	// DetailLines returns one row per reservation in the window, payments
	// aggregated, cancelled bookings excluded.
	DetailLines(ctx context.Context, start, end time.Time) ([]DetailLine, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
