package jobs

import (
	"fmt"
	"time"
)

// Display markers for estimates that have no clock value.
const (
	ETANotApplicable = "–"
	ETACalculating   = "Calculating…"
	ETAError         = "?"
)

const day = 24 * time.Hour

// FormatETA renders the remaining-time cell for a job. Only jobs currently
// rendering carry an estimate; everything else gets ETANotApplicable. Known
// durations drop sub-second precision and gain a day prefix once they reach
// 24 hours. Failures yield ETAError and never escape.
func FormatETA(status string, remaining Remaining) (out string) {
	defer func() {
		if recover() != nil {
			out = ETAError
		}
	}()

	if Categorize(status) != CategoryRendering {
		return ETANotApplicable
	}
	switch remaining.Kind() {
	case RemainingUnknown:
		return ETACalculating
	case RemainingKnown:
		d, _ := remaining.Duration()
		return formatClock(d)
	default:
		return ETAError
	}
}

// ETA is FormatETA applied to the record's own status and estimate.
func (r Record) ETA() string {
	return FormatETA(r.Status, r.Remaining)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		return ETAError
	}
	d = d.Truncate(time.Second)
	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	if days > 0 {
		return fmt.Sprintf("%d.%02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
