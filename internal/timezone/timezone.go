package timezone

import "time"

// Reservation instants and schedule boundaries are always interpreted at a
// fixed UTC-3 civil offset, independent of the host timezone. Interval
// arithmetic must never mix this representation with naive local times.
const offsetSeconds = -3 * 60 * 60

var Fixed = time.FixedZone("UTC-3", offsetSeconds)

func Now() time.Time {
	return time.Now().In(Fixed)
}

// In converts an instant to the fixed-offset representation.
func In(t time.Time) time.Time {
	return t.In(Fixed)
}

// DayBounds returns the [00:00, 24:00) civil-day window containing date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	d := date.In(Fixed)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Fixed)
	return start, start.Add(24 * time.Hour)
}

// At anchors an "HH:MM" wall-clock string on the civil day of date.
func At(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(Fixed)
	return time.Date(
		d.Year(), d.Month(), d.Day(),
		t.Hour(), t.Minute(), 0, 0,
		Fixed,
	), nil
}

// ParseDate parses "2006-01-02" as a civil date at the fixed offset.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Fixed)
}

// ParseDateTime parses separate date and "HH:MM" strings at the fixed offset.
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, Fixed)
}
