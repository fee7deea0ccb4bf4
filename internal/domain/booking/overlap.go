package booking

import "time"

// Overlaps is the single conflict primitive shared by slot generation and the
// commit path. Intervals are half-open: [aStart, aStart+aDur) conflicts with
// [bStart, bStart+bDur) iff aStart < bEnd && bStart < aEnd. Touching
// intervals do not conflict, so back-to-back reservations are legal.
func Overlaps(aStart time.Time, aDur time.Duration, bStart time.Time, bDur time.Duration) bool {
	return IntervalsOverlap(aStart, aStart.Add(aDur), bStart, bStart.Add(bDur))
}

func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
