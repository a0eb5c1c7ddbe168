package report

import "time"

// Summary aggregates money over a reporting window.
type Summary struct {
	StartDate               time.Time `json:"start_date"`
	EndDate                 time.Time `json:"end_date"`
	TotalReservationRevenue float64   `json:"total_reservation_revenue"`
	TotalPaymentsReceived   float64   `json:"total_payments_received"`
	TotalReservationsCount  int       `json:"total_reservations_count"`
}

// DetailLine is one printable statement row.
type DetailLine struct {
	ReservationID   int64     `json:"reservation_id"`
	Reference       string    `json:"reference"`
	ReservationDate time.Time `json:"reservation_date"`
	ClientFullName  string    `json:"client_full_name"`
	VehicleLabel    string    `json:"vehicle_label"`
	TotalPrice      float64   `json:"total_price"`
	AmountPaid      float64   `json:"amount_paid"`
	Balance         float64   `json:"balance"`
	Status          string    `json:"status"`
}

// FinancialReport is the detail lines plus derived totals.
type FinancialReport struct {
	StartDate             time.Time    `json:"start_date"`
	EndDate               time.Time    `json:"end_date"`
	Details               []DetailLine `json:"details"`
	TotalAmountDue        float64      `json:"total_amount_due"`
	TotalPaymentsReceived float64      `json:"total_payments_collected"`
	TotalRemainingBalance float64      `json:"total_remaining_balance"`
	TotalReservations     int          `json:"total_reservations_count"`
}

// DashboardStats backs the back-office landing page counters.
type DashboardStats struct {
	TotalVehicles       int `json:"total_vehicles"`
	AvailableVehicles   int `json:"available_vehicles"`
	ActiveReservations  int `json:"active_reservations"`
	PendingMaintenances int `json:"pending_maintenances"`
}

// Compute fills the derived totals from the detail lines.
func (r *FinancialReport) Compute() {
	r.TotalAmountDue = 0
	r.TotalPaymentsReceived = 0
	for i := range r.Details {
		r.Details[i].Balance = r.Details[i].TotalPrice - r.Details[i].AmountPaid
		r.TotalAmountDue += r.Details[i].TotalPrice
		r.TotalPaymentsReceived += r.Details[i].AmountPaid
	}
	r.TotalRemainingBalance = r.TotalAmountDue - r.TotalPaymentsReceived
	r.TotalReservations = len(r.Details)
}
