package chart

import "time"

// Windowed clips a series to the requested look-back period ending today.
// PeriodMax returns the series unchanged. When the clipped series starts
// strictly after the cutoff, a synthetic leading point is inserted at the
// cutoff carrying the last value known before it (or, with no history before
// the cutoff, the first available value), so charts do not appear to start at
// zero or with a misleading slope.
func Windowed(points []Point, period Period, today time.Time) []Point {
	days, ok := period.Days()
	if !ok {
		return points
	}

	cutoff := today.AddDate(0, 0, -days)

	var filtered []Point
	for _, p := range points {
		if !p.Date.Before(cutoff) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	if filtered[0].Date.After(cutoff) {
		lastKnown := filtered[0].Value
		for i := len(points) - 1; i >= 0; i-- {
			if points[i].Date.Before(cutoff) {
				lastKnown = points[i].Value
				break
			}
		}
		return append([]Point{{Date: cutoff, Value: lastKnown}}, filtered...)
	}

	return filtered
}

// Thin reduces a date sequence to every k-th element to bound the number of
// x-axis labels regardless of history length. The stride comes from a fixed
// bucket table on the sequence length.
func Thin(dates []time.Time) []time.Time {
	stride := thinStride(len(dates))
	if stride <= 1 {
		return dates
	}

	var thinned []time.Time
	for i := 0; i < len(dates); i += stride {
		thinned = append(thinned, dates[i])
	}
	return thinned
}

// thinStride maps a point count to the label stride.
func thinStride(count int) int {
	switch {
	case count <= 6:
		return 1
	case count <= 12:
		return 2
	case count <= 24:
		return 3
	case count <= 60:
		return 6
	default:
		return 12
	}
}
