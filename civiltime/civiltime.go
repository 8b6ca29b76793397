// Package civiltime resolves naive civil date-times ("what a wall clock
// reads") against a timezone's transition table.
//
// Around a forward transition some wall-clock readings never happen, and
// around a backward transition some happen twice. Resolve reports the first
// case as ErrNonExistent and picks one of the two instants in the second case
// according to NaiveTime.PreferLater. It never silently moves a reading to a
// nearby valid time.
package civiltime

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngrash/go-tzresolve/internal/unixtime"
)

// NaiveTime is a civil date and time without a zone.
// Second and Millisecond are optional and default to zero.
type NaiveTime struct {
	Year        int
	Month       int // 1-12
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int

	// PreferLater selects the later of two instants when the reading is
	// ambiguous. It has no effect otherwise.
	PreferLater bool
}

// Validate reports fields outside their natural ranges. Resolve does not
// require valid fields and normalizes them instead (month 13 is January of
// the next year, and so on).
func (t NaiveTime) Validate() error {
	var errs []error
	if t.Month < 1 || t.Month > 12 {
		errs = append(errs, fmt.Errorf("month %d out of range [1, 12]", t.Month))
	} else if n := unixtime.DaysInMonth(t.Year, t.Month); t.Day < 1 || t.Day > n {
		errs = append(errs, fmt.Errorf("day %d out of range [1, %d]", t.Day, n))
	}
	if t.Hour < 0 || t.Hour > 23 {
		errs = append(errs, fmt.Errorf("hour %d out of range [0, 23]", t.Hour))
	}
	if t.Minute < 0 || t.Minute > 59 {
		errs = append(errs, fmt.Errorf("minute %d out of range [0, 59]", t.Minute))
	}
	if t.Second < 0 || t.Second > 59 {
		errs = append(errs, fmt.Errorf("second %d out of range [0, 59]", t.Second))
	}
	if t.Millisecond < 0 || t.Millisecond > 999 {
		errs = append(errs, fmt.Errorf("millisecond %d out of range [0, 999]", t.Millisecond))
	}
	return errors.Join(errs...)
}

// String formats the reading as YYYY-MM-DDTHH:MM:SS.mmm.
func (t NaiveTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Millisecond)
}

// asUTC is the reading interpreted as if it were UTC. It is the reference
// point for regime lookup, not the resolved instant.
func (t NaiveTime) asUTC() int64 {
	return unixtime.FromCivil(t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Millisecond)
}

// AwareTime is a NaiveTime bound to the regime that was in force.
type AwareTime struct {
	NaiveTime

	// Offset is the regime's offset in minutes west of UTC.
	Offset int
	// Abbreviation is the regime's zone designation, e.g. "CEST".
	Abbreviation string
	// Instant is the resolved Unix time in milliseconds.
	Instant int64
	// Later reports whether the later of two candidate instants was chosen.
	// Unlike PreferLater it describes the outcome, not the request.
	Later bool
}

// UTCOffset returns the offset to add to UTC to get local time,
// i.e. positive east of Greenwich.
func (a AwareTime) UTCOffset() time.Duration {
	return -time.Duration(a.Offset) * time.Minute
}

// Time returns the instant in a fixed zone named after the abbreviation.
func (a AwareTime) Time() time.Time {
	zone := time.FixedZone(a.Abbreviation, int(a.UTCOffset()/time.Second))
	return time.UnixMilli(a.Instant).In(zone)
}

// String formats the reading with its offset and abbreviation, e.g.
// "2019-10-27T02:30:00.000+01:00 (CET)".
func (a AwareTime) String() string {
	return fmt.Sprintf("%s%s (%s)", a.NaiveTime, formatOffset(a.UTCOffset()), a.Abbreviation)
}

func formatOffset(d time.Duration) string {
	sign := '+'
	if d < 0 {
		sign = '-'
		d = -d
	}
	return fmt.Sprintf("%c%02d:%02d", sign, int(d/time.Hour), int(d%time.Hour/time.Minute))
}

var (
	// ErrNonExistent means the civil time falls into a gap created by a
	// forward transition and was never shown by a clock in the zone.
	ErrNonExistent = errors.New("civil time does not exist")

	// ErrInconsistent means more than two regimes claim the civil time.
	// A well-formed table cannot produce this; it signals malformed data.
	ErrInconsistent = errors.New("inconsistent transition table")
)

// ResolutionError describes a failure to resolve a civil time.
// Use errors.Is with ErrNonExistent, ErrInconsistent or
// tztable.ErrNotCovered to classify it.
type ResolutionError struct {
	Zone    string
	Time    NaiveTime
	Matches int // number of matching regimes
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Matches > 2 {
		return fmt.Sprintf("resolve %s in %s: %v: %d regimes match", e.Time, e.Zone, e.Err, e.Matches)
	}
	return fmt.Sprintf("resolve %s in %s: %v", e.Time, e.Zone, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
