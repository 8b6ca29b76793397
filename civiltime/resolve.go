package civiltime

import (
	"fmt"
	"time"

	"github.com/ngrash/go-tzresolve/internal/unixtime"
	"github.com/ngrash/go-tzresolve/tztable"
)

const msPerMinute = int64(time.Minute / time.Millisecond)

// Resolver resolves civil times with a configurable lookup window.
// The zero value uses tztable.DefaultWindowMargin.
type Resolver struct {
	// Margin is how far before and after a reading regimes are considered.
	// It must exceed the largest offset magnitude in the table.
	Margin time.Duration
}

func (r Resolver) margin() time.Duration {
	if r.Margin <= 0 {
		return tztable.DefaultWindowMargin
	}
	return r.Margin
}

// Resolve resolves t against tbl with the default Resolver.
func Resolve(t NaiveTime, tbl *tztable.Table) (AwareTime, error) {
	return Resolver{}.Resolve(t, tbl)
}

// FromInstant returns the civil reading of instant in tbl's zone with the
// default Resolver.
func FromInstant(instant int64, tbl *tztable.Table) (AwareTime, error) {
	return Resolver{}.FromInstant(instant, tbl)
}

// Resolve returns the instant at which a clock in tbl's zone showed t.
//
// If the reading happened twice, the earlier instant is returned unless
// t.PreferLater is set. If it never happened, the error wraps ErrNonExistent.
func (r Resolver) Resolve(t NaiveTime, tbl *tztable.Table) (AwareTime, error) {
	reading := t.asUTC()
	matches, err := r.matching(reading, tbl)
	if err != nil {
		return AwareTime{}, &ResolutionError{Zone: tbl.Name(), Time: t, Err: err}
	}

	var (
		chosen tztable.Regime
		later  bool
	)
	switch len(matches) {
	case 0:
		return AwareTime{}, &ResolutionError{Zone: tbl.Name(), Time: t, Err: ErrNonExistent}
	case 1:
		chosen = matches[0]
	case 2:
		if t.PreferLater {
			chosen, later = matches[1], true
		} else {
			chosen = matches[0]
		}
	default:
		return AwareTime{}, &ResolutionError{Zone: tbl.Name(), Time: t, Matches: len(matches), Err: ErrInconsistent}
	}

	return AwareTime{
		NaiveTime:    t,
		Offset:       chosen.Offset,
		Abbreviation: chosen.Abbreviation,
		Instant:      reading + int64(chosen.Offset)*msPerMinute,
		Later:        later,
	}, nil
}

// FromInstant returns the civil reading of instant in tbl's zone.
//
// When the reading is the second occurrence of an ambiguous wall-clock time,
// both PreferLater and Later are set, so resolving the returned NaiveTime
// yields instant again.
func (r Resolver) FromInstant(instant int64, tbl *tztable.Table) (AwareTime, error) {
	regime, err := tbl.At(instant)
	if err != nil {
		return AwareTime{}, fmt.Errorf("reading of %d in %s: %w", instant, tbl.Name(), err)
	}

	reading := instant - int64(regime.Offset)*msPerMinute
	var t NaiveTime
	t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Millisecond = unixtime.ToCivil(reading)

	matches, err := r.matching(reading, tbl)
	if err != nil {
		return AwareTime{}, fmt.Errorf("reading of %d in %s: %w", instant, tbl.Name(), err)
	}
	later := len(matches) == 2 && matches[1].Index == regime.Index
	t.PreferLater = later

	return AwareTime{
		NaiveTime:    t,
		Offset:       regime.Offset,
		Abbreviation: regime.Abbreviation,
		Instant:      instant,
		Later:        later,
	}, nil
}

// matching returns the regimes of the window around reading whose interval,
// shifted into local time by the regime's own offset, contains reading.
func (r Resolver) matching(reading int64, tbl *tztable.Table) ([]tztable.Regime, error) {
	window, err := tbl.Window(reading, r.margin())
	if err != nil {
		return nil, err
	}
	var matches []tztable.Regime
	for _, rg := range window {
		from := toLocal(rg.From, rg.Offset)
		until := toLocal(rg.Until, rg.Offset)
		if from <= reading && reading < until {
			matches = append(matches, rg)
		}
	}
	return matches, nil
}

// toLocal converts a regime boundary to the local reading it corresponds to.
// The open bounds of a table stay open.
func toLocal(instant int64, offset int) int64 {
	if instant == tztable.MinInstant || instant == tztable.MaxInstant {
		return instant
	}
	return instant - int64(offset)*msPerMinute
}
