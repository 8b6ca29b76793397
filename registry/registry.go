// Package registry keeps transition tables by zone name.
//
// The resolver in package civiltime takes its table as an argument and never
// consults a registry. A Registry is a convenience for programs that refer to
// zones by name: it loads tables from a Source on first use and keeps them in
// a bounded in-memory cache.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/ngrash/go-tzresolve/civiltime"
	"github.com/ngrash/go-tzresolve/tztable"
)

// ErrUnknownZone is returned by sources that do not know a zone name.
var ErrUnknownZone = errors.New("unknown zone")

// Source provides transition tables by zone name.
type Source interface {
	Table(ctx context.Context, name string) (*tztable.Table, error)
}

// DefaultMaximumSize is the number of tables kept when Options.MaximumSize is zero.
// There are fewer than 600 zones and links in the IANA database.
const DefaultMaximumSize = 1024

// Options configures a Registry. The zero value is ready to use.
type Options struct {
	// MaximumSize bounds the number of cached tables.
	MaximumSize int
	// Logger receives debug logs about cache hits, misses and loads.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Registry caches tables loaded from a Source. It is safe for concurrent use.
type Registry struct {
	src    Source
	cache  *otter.Cache[string, *tztable.Table]
	logger *slog.Logger
}

// New returns a Registry loading tables from src.
func New(src Source, opts Options) *Registry {
	size := opts.MaximumSize
	if size <= 0 {
		size = DefaultMaximumSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		src: src,
		cache: otter.Must(&otter.Options[string, *tztable.Table]{
			MaximumSize: size,
		}),
		logger: logger,
	}
}

// Table returns the table for the named zone, loading it on first use.
//
// Concurrent first uses of the same name may load the table more than once.
// Tables from the same source are equal, so the duplicate work is harmless.
func (r *Registry) Table(ctx context.Context, name string) (*tztable.Table, error) {
	if tbl, ok := r.cache.GetIfPresent(name); ok {
		r.logger.Debug("table cache hit", "zone", name)
		return tbl, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("table cache miss", "zone", name)
	start := time.Now()
	tbl, err := r.src.Table(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", name, err)
	}
	r.cache.Set(name, tbl)
	r.logger.Debug("table loaded", "zone", name, "regimes", tbl.Len(), "duration", time.Since(start))
	return tbl, nil
}

// Resolve resolves t against the named zone's table.
func (r *Registry) Resolve(ctx context.Context, name string, t civiltime.NaiveTime) (civiltime.AwareTime, error) {
	tbl, err := r.Table(ctx, name)
	if err != nil {
		return civiltime.AwareTime{}, err
	}
	return civiltime.Resolve(t, tbl)
}

// FromInstant returns the civil reading of instant in the named zone.
func (r *Registry) FromInstant(ctx context.Context, name string, instant int64) (civiltime.AwareTime, error) {
	tbl, err := r.Table(ctx, name)
	if err != nil {
		return civiltime.AwareTime{}, err
	}
	return civiltime.FromInstant(instant, tbl)
}

// Invalidate drops the named zone from the cache so the next use reloads it.
func (r *Registry) Invalidate(name string) {
	r.cache.Invalidate(name)
}

// Len returns the approximate number of cached tables.
func (r *Registry) Len() int {
	return r.cache.EstimatedSize()
}
