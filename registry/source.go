package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/ngrash/go-tzresolve/tztable"
)

var (
	// DefaultFrom is the start of the span covered by LocationSource tables
	// when From is zero.
	DefaultFrom = time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)
	// DefaultUntil is the end of the span covered by LocationSource tables
	// when Until is zero.
	DefaultUntil = time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// LocationSource builds tables from Go's timezone database with
// time.LoadLocation. The zero value is ready to use.
//
// Transitions before From are folded into the first regime and the zone in
// force at Until is extended forever.
type LocationSource struct {
	From  time.Time
	Until time.Time
}

// Table implements Source.
func (s LocationSource) Table(_ context.Context, name string) (*tztable.Table, error) {
	if name == "" || name == "Local" {
		// time.LoadLocation maps these to the process' zone, which is not a
		// stable name for a table.
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownZone, err)
	}
	from, until := s.From, s.Until
	if from.IsZero() {
		from = DefaultFrom
	}
	if until.IsZero() {
		until = DefaultUntil
	}
	return tztable.FromLocation(loc, from, until)
}

// StaticSource serves pre-built tables keyed by zone name.
type StaticSource map[string]*tztable.Table

// Table implements Source.
func (s StaticSource) Table(_ context.Context, name string) (*tztable.Table, error) {
	tbl, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return tbl, nil
}
