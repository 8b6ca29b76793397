package tztable

import (
	"fmt"
	"time"
)

// FromLocation builds a table from the zone transitions of loc between from
// and until, as reported by time.Time.ZoneBounds.
//
// The zone in force at from becomes the first regime and is open-ended in the
// past. The zone in force at until becomes the last regime and never ends.
// Adjacent zones with the same offset and abbreviation are merged, and
// offsets are truncated to whole minutes.
func FromLocation(loc *time.Location, from, until time.Time) (*Table, error) {
	if loc == nil {
		return nil, fmt.Errorf("from location: nil location")
	}
	if !from.Before(until) {
		return nil, fmt.Errorf("from location %s: empty range [%v, %v)", loc, from, until)
	}

	var (
		offsets []int
		abbrevs []string
		untils  []int64
	)
	for t := from.In(loc); ; {
		name, east := t.Zone()
		_, end := t.ZoneBounds()
		if !end.IsZero() && !end.After(t) {
			// Rule-extended zones may report end == t at the end of a leap
			// year. The split this leaves is merged below.
			_, end = t.Add(48 * time.Hour).ZoneBounds()
			if !end.IsZero() && !end.After(t) {
				return nil, fmt.Errorf("from location %s: zone bounds stuck at %v", loc, t)
			}
		}

		next := MaxInstant
		if !end.IsZero() && end.Before(until) {
			next = end.UnixMilli()
		}

		off := -east / 60
		if n := len(untils); n > 0 && offsets[n-1] == off && abbrevs[n-1] == name {
			untils[n-1] = next
		} else {
			offsets = append(offsets, off)
			abbrevs = append(abbrevs, name)
			untils = append(untils, next)
		}

		if next == MaxInstant {
			break
		}
		t = end.In(loc)
	}
	return New(loc.String(), offsets, abbrevs, untils)
}
