package reservation

import (
	"math"
	"time"
)

const lateFeeMultiplier = 1.5

// BillableDays converts a rental window into charged days. Any started day
// counts in full and every rental is at least one day.
func BillableDays(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// LateFee charges every started late day at the vehicle's base daily rate
// with a surcharge. Returning on time or early costs nothing.
func LateFee(due, returned time.Time, baseRatePerDay float64) float64 {
	if !returned.After(due) {
		return 0
	}
	lateDays := math.Ceil(returned.Sub(due).Hours() / 24)
	return round2(lateDays * baseRatePerDay * lateFeeMultiplier)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
