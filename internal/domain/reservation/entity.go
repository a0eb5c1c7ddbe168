package reservation

import "time"

// Reservation is one rental booking. VehicleID is nullable: public requests
// arrive unassigned and staff attach a vehicle when confirming.
type Reservation struct {
	ID              int64      `json:"id" db:"id"`
	Reference       string     `json:"reference" db:"reference"`
	ClientID        int64      `json:"client_id" db:"client_id"`
	VehicleID       *int64     `json:"vehicle_id,omitempty" db:"vehicle_id"`
	RequestedStart  time.Time  `json:"requested_start" db:"requested_start"`
	RequestedEnd    time.Time  `json:"requested_end" db:"requested_end"`
	ActualStart     *time.Time `json:"actual_start,omitempty" db:"actual_start"`
	ActualEnd       *time.Time `json:"actual_end,omitempty" db:"actual_end"`
	Status          Status     `json:"status" db:"status"`
	TotalAmount     float64    `json:"total_amount" db:"total_amount"`
	DepositAmount   float64    `json:"deposit_amount" db:"deposit_amount"`
	CreatedByUserID *int64     `json:"created_by_user_id,omitempty" db:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`

	// Loaded relations
	ClientName   string    `json:"client_name,omitempty" db:"-"`
	VehicleLabel string    `json:"vehicle_label,omitempty" db:"-"`
	Payments     []Payment `json:"payments,omitempty"`
}

type PaymentMethod string

const (
	MethodCard          PaymentMethod = "Card"
	MethodCash          PaymentMethod = "Cash"
	MethodTransfer      PaymentMethod = "Transfer"
	MethodDepositRefund PaymentMethod = "DepositRefund"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodCash, MethodTransfer, MethodDepositRefund:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// Payment is money received against a reservation.
type Payment struct {
	ID            int64         `json:"id" db:"id"`
	ReservationID int64         `json:"reservation_id" db:"reservation_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Method        PaymentMethod `json:"method" db:"method"`
	Status        PaymentStatus `json:"status" db:"status"`
	PaidAt        time.Time     `json:"paid_at" db:"paid_at"`
}
