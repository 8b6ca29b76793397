// Command tzresolve resolves wall-clock readings against timezone transition
// tables built from Go's timezone database.
//
// A single registry is built before the subcommand runs, so a zone used more
// than once in an invocation is loaded once.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ngrash/go-tzresolve/registry"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// options are shared by all subcommands.
type options struct {
	verbose   bool
	fromYear  int
	untilYear int

	reg *registry.Registry
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log table loading to stderr")
	fs.IntVar(&o.fromYear, "from-year", registry.DefaultFrom.Year(), "First year covered by transition tables")
	fs.IntVar(&o.untilYear, "until-year", registry.DefaultUntil.Year(), "Year from which the last regime of a table is extended forever")
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *options) newRegistry(stderr io.Writer) (*registry.Registry, error) {
	if o.fromYear >= o.untilYear {
		return nil, fmt.Errorf("--from-year %d must be before --until-year %d", o.fromYear, o.untilYear)
	}
	src := registry.LocationSource{
		From:  time.Date(o.fromYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(o.untilYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	return registry.New(src, registry.Options{Logger: o.logger(stderr)}), nil
}

func newRootCmd() *cobra.Command {
	var opts options
	rootCmd := &cobra.Command{
		Use:   "tzresolve",
		Short: "Resolve wall-clock times against timezone transition tables",
		Long: `tzresolve maps wall-clock readings in a named timezone to absolute
instants and back.

Readings that fall into a daylight saving gap are reported as non-existent.
Readings that occur twice resolve to the earlier instant unless --later is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.newRegistry(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.reg = reg
			return nil
		},
	}
	opts.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(resolveCmd(&opts))
	rootCmd.AddCommand(lookupCmd(&opts))
	rootCmd.AddCommand(transitionsCmd(&opts))
	rootCmd.AddCommand(diffCmd(&opts))
	return rootCmd
}
