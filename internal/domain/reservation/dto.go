package reservation

import "time"

// CreateReservationRequest is the staff booking flow: vehicle assigned up
// front, amount computed from tariffs when zero.
type CreateReservationRequest struct {
	ClientID       int64     `json:"client_id" binding:"required"`
	VehicleID      int64     `json:"vehicle_id" binding:"required"`
	RequestedStart time.Time `json:"requested_start" binding:"required"`
	RequestedEnd   time.Time `json:"requested_end" binding:"required"`
	TotalAmount    float64   `json:"total_amount" binding:"min=0"`
	DepositAmount  float64   `json:"deposit_amount" binding:"min=0"`
}

// PublicRequest is the web booking form: client identified by email and
// created on the fly when unknown, reservation left Pending with zero amount.
type PublicRequest struct {
	VehicleID   int64     `json:"vehicle_id" binding:"required"`
	ClientName  string    `json:"client_name" binding:"required"`
	ClientEmail string    `json:"client_email" binding:"required,email"`
	ClientPhone string    `json:"client_phone"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
}

type ReturnResult struct {
	Reservation  *Reservation `json:"reservation"`
	ExtraCharges float64      `json:"extra_charges"`
}

type RecordPaymentRequest struct {
	Amount float64       `json:"amount" binding:"required,gt=0"`
	Method PaymentMethod `json:"method" binding:"required"`
}
