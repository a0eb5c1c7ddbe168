package ws

import "time"

// Event types pushed to connected staff dashboards.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationPickedUp  = "reservation.picked_up"
	EventReservationReturned  = "reservation.returned"
	EventReservationCancelled = "reservation.cancelled"
	EventPaymentRecorded      = "payment.recorded"
	EventMaintenanceScheduled = "maintenance.scheduled"
	EventVehicleReady         = "vehicle.ready"
)

type Event struct {
	Type string      `json:"type"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data,omitempty"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{Type: eventType, At: time.Now().UTC(), Data: data}
}
