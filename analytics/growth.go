// api/analytics/growth.go
package analytics

import (
	"math"
	"time"
)

// PreviousWindow returns the window of equal length immediately before
// [start, end): [start-D, start).
func PreviousWindow(start, end time.Time) (time.Time, time.Time) {
	return start.Add(-end.Sub(start)), start
}

// GrowthPercentage computes the period-over-period growth figure. A zero
// previous total yields 0, never a division by zero or an Inf that would
// break JSON encoding downstream.
func GrowthPercentage(current, previous int) int {
	if previous <= 0 {
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}
