package maintenance

import "time"

type ScheduleRequest struct {
	Date  time.Time `json:"date" binding:"required"`
	Type  string    `json:"type" binding:"required,max=100"`
	Notes string    `json:"notes"`
}
