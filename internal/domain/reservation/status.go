package reservation

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "NoShow"
)

// allowTransition is the authoritative transition table for the reservation
// lifecycle. Completed and Cancelled are terminal; a NoShow may still be
// corrected to Cancelled.
var allowTransition = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusActive, StatusCancelled, StatusNoShow},
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusNoShow:    {StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Terminal reports whether a reservation in this status no longer blocks the
// vehicle's calendar.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func (s Status) Valid() bool {
	_, ok := allowTransition[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed lifecycle step.
func CanTransition(from, to Status) bool {
	allowed, ok := allowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
