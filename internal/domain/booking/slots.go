package booking

import "time"

// SlotGranularity is the step between candidate start times.
const SlotGranularity = 30 * time.Minute

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// GenerateSlots returns the start times in [dayStart, dayEnd] where a booking
// of length needed fits entirely inside the working window and overlaps no
// busy interval. All arguments must share the fixed-offset location; output
// is ascending. Pure function with no clock access.
func GenerateSlots(dayStart, dayEnd time.Time, needed time.Duration, busy []BusyInterval) []time.Time {
	if needed <= 0 || !dayEnd.After(dayStart) {
		return nil
	}

	var slots []time.Time
	for cur := dayStart; !cur.Add(needed).After(dayEnd); cur = cur.Add(SlotGranularity) {
		if !overlapsAny(cur, cur.Add(needed), busy) {
			slots = append(slots, cur)
		}
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if IntervalsOverlap(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// FormatSlots renders slot start times as "HH:MM" pairs spanning needed.
func FormatSlots(starts []time.Time, needed time.Duration) []TimeSlot {
	out := make([]TimeSlot, 0, len(starts))
	for _, s := range starts {
		out = append(out, TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(needed).Format("15:04"),
		})
	}
	return out
}
