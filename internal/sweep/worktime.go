package sweep

import "time"

// Location is the fixed UTC+3 offset used for all time-window decisions.
// All stored timestamps and sweep calculations are normalized to it.
var Location = time.FixedZone("UTC+3", 3*60*60)

const (
	workDayStart = 8 * time.Hour
	workDayEnd   = 22 * time.Hour
)

// IsWorkTime reports whether t falls inside the working-hours window.
// The boundary is closed on both ends: exactly 08:00:00 and exactly 22:00:00
// count as outside working hours.
func IsWorkTime(t time.Time) bool {
	t = t.In(Location)
	sinceMidnight := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())

	return sinceMidnight > workDayStart && sinceMidnight < workDayEnd
}
