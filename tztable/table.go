// Package tztable implements per-timezone transition tables: the ordered
// record of UTC-offset regimes a timezone has observed, each ending at a
// transition instant.
//
// A Table is immutable once constructed and safe for concurrent use.
// All instants are Unix timestamps in milliseconds.
package tztable

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	// MinInstant is the open lower bound of the first regime of every table.
	MinInstant int64 = math.MinInt64
	// MaxInstant marks a regime that never ends. Only the last regime of a
	// table may end at MaxInstant.
	MaxInstant int64 = math.MaxInt64
)

// DefaultWindowMargin is the distance on either side of a provisional
// instant that Window is asked to cover when resolving a civil time.
//
// The margin assumes that UTC offsets stay well within ±24 hours (TZif
// readers are only required to support [-25h, 26h)) and that no two
// transitions are closer together than the margin. A table violating either
// assumption can make the resolver miss a matching regime.
const DefaultWindowMargin = 72 * time.Hour

// ErrNotCovered is returned when an instant is at or after the end of the
// last regime of a table. Tables are expected to end with an open-ended
// regime, so this indicates a construction problem rather than bad input.
var ErrNotCovered = errors.New("instant not covered by transition table")

// Regime is a period during which a single UTC offset was in force.
type Regime struct {
	// Index of the regime within its table.
	Index int

	// Offset is the number of minutes to add to a local reading to obtain
	// UTC, i.e. minutes west of Greenwich. Central European Time is -60.
	// This matches the sign convention of POSIX TZ strings.
	Offset int

	// Abbreviation is the zone designation, e.g. "CET".
	Abbreviation string

	// From is the first instant of the regime (inclusive), or MinInstant
	// for the first regime.
	From int64

	// Until is the instant the next regime begins (exclusive), or
	// MaxInstant if the regime never ends.
	Until int64
}

// Contains reports whether instant lies within [From, Until).
func (r Regime) Contains(instant int64) bool {
	return r.From <= instant && instant < r.Until
}

// Table is the transition table of a single timezone.
type Table struct {
	name          string
	offsets       []int
	abbreviations []string
	untils        []int64
}

// New returns a table built from three parallel sequences describing
// each regime: its offset (minutes west of UTC), its abbreviation and the
// instant at which it ends. The slices are copied.
//
// All violations of the table invariants are reported together.
func New(name string, offsets []int, abbreviations []string, untils []int64) (*Table, error) {
	if err := validate(offsets, abbreviations, untils); err != nil {
		return nil, fmt.Errorf("invalid transition table %q: %w", name, err)
	}
	return &Table{
		name:          name,
		offsets:       append([]int(nil), offsets...),
		abbreviations: append([]string(nil), abbreviations...),
		untils:        append([]int64(nil), untils...),
	}, nil
}

func validate(offsets []int, abbreviations []string, untils []int64) error {
	var errs []error
	if len(offsets) == 0 {
		errs = append(errs, fmt.Errorf("no regimes: at least one is required"))
	}
	if len(offsets) != len(abbreviations) || len(offsets) != len(untils) {
		errs = append(errs, fmt.Errorf("inconsistent lengths: offsets = %d, abbreviations = %d, untils = %d", len(offsets), len(abbreviations), len(untils)))
	}
	for i := 1; i < len(untils); i++ {
		if untils[i] <= untils[i-1] {
			errs = append(errs, fmt.Errorf("untils not strictly increasing at %d: %d <= %d", i, untils[i], untils[i-1]))
		}
	}
	for i, u := range untils {
		if u == MinInstant {
			errs = append(errs, fmt.Errorf("regime %d ends at the beginning of time", i))
		}
	}
	return errors.Join(errs...)
}

// Name returns the name the table was created with, e.g. "Europe/Paris".
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of regimes.
func (t *Table) Len() int {
	return len(t.untils)
}

// Regime returns the i-th regime. It panics if i is out of range.
func (t *Table) Regime(i int) Regime {
	from := MinInstant
	if i > 0 {
		from = t.untils[i-1]
	}
	return Regime{
		Index:        i,
		Offset:       t.offsets[i],
		Abbreviation: t.abbreviations[i],
		From:         from,
		Until:        t.untils[i],
	}
}

// Regimes returns all regimes in chronological order.
func (t *Table) Regimes() []Regime {
	rs := make([]Regime, t.Len())
	for i := range rs {
		rs[i] = t.Regime(i)
	}
	return rs
}

// Index returns the index of the regime in force at instant: the first
// regime whose end is strictly after instant. It reports false if instant
// is at or after the end of the last regime.
func (t *Table) Index(instant int64) (int, bool) {
	i := sort.Search(len(t.untils), func(i int) bool {
		return instant < t.untils[i]
	})
	return i, i < len(t.untils)
}

// At returns the regime in force at instant.
func (t *Table) At(instant int64) (Regime, error) {
	i, ok := t.Index(instant)
	if !ok {
		return Regime{}, t.notCovered(instant)
	}
	return t.Regime(i), nil
}

// Window returns every regime from the one in force at instant-margin up to
// and including the one in force at instant+margin.
func (t *Table) Window(instant int64, margin time.Duration) ([]Regime, error) {
	m := margin.Milliseconds()
	lo, hi := addSaturated(instant, -m), addSaturated(instant, m)
	first, ok := t.Index(lo)
	if !ok {
		return nil, t.notCovered(lo)
	}
	last, ok := t.Index(hi)
	if !ok {
		return nil, t.notCovered(hi)
	}
	w := make([]Regime, 0, last-first+1)
	for i := first; i <= last; i++ {
		w = append(w, t.Regime(i))
	}
	return w, nil
}

// notCovered leaves naming the zone to the caller.
func (t *Table) notCovered(instant int64) error {
	return fmt.Errorf("%w: %d is after %d", ErrNotCovered, instant, t.untils[len(t.untils)-1])
}

// addSaturated returns instant+d clamped to the open interval between
// MinInstant and MaxInstant, so that the result is always inside an
// open-ended first or last regime.
func addSaturated(instant, d int64) int64 {
	s := instant + d
	switch {
	case d > 0 && (s < instant || s == MaxInstant):
		return MaxInstant - 1
	case d < 0 && (s > instant || s == MinInstant):
		return MinInstant + 1
	}
	return s
}
