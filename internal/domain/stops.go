package domain

import "sort"

// NormalizeStops orders stops by their requested position and renumbers them 1..N.
// A stop without a position (0 or negative) keeps its list order. Stops missing
// an id get a fresh one; every stop is bound to tripID.
func NormalizeStops(tripID string, stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)

	for i := range out {
		if out[i].Position <= 0 {
			out[i].Position = i + 1
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})

	for i := range out {
		if out[i].ID == "" {
			out[i].ID = NewID()
		}
		out[i].TripID = tripID
		out[i].Position = i + 1
	}
	return out
}

// InsertStop places stop at the 1-based position (appending when position is
// out of range or unset) and renumbers the list.
func InsertStop(tripID string, stops []Stop, stop Stop, position int) []Stop {
	idx := position - 1
	if position <= 0 || idx > len(stops) {
		idx = len(stops)
	}

	out := make([]Stop, 0, len(stops)+1)
	out = append(out, stops[:idx]...)
	out = append(out, stop)
	out = append(out, stops[idx:]...)

	return renumber(tripID, out)
}

// RemoveStop drops the stop with stopID and renumbers the rest.
// The second result is false when no stop matched.
func RemoveStop(tripID string, stops []Stop, stopID string) ([]Stop, bool) {
	out := make([]Stop, 0, len(stops))
	found := false
	for _, s := range stops {
		if s.ID == stopID {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return stops, false
	}
	return renumber(tripID, out), true
}

func renumber(tripID string, stops []Stop) []Stop {
	for i := range stops {
		if stops[i].ID == "" {
			stops[i].ID = NewID()
		}
		stops[i].TripID = tripID
		stops[i].Position = i + 1
	}
	return stops
}
