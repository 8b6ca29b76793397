package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzresolve/civiltime"
	"github.com/ngrash/go-tzresolve/tztable"
)

var (
	headline = color.New(color.Bold)
	faint    = color.New(color.FgHiBlack)
	forward  = color.New(color.FgGreen)
	backward = color.New(color.FgYellow)
	failure  = color.New(color.FgRed)
)

func resolveCmd(opts *options) *cobra.Command {
	var later bool
	cmd := &cobra.Command{
		Use:   "resolve ZONE YEAR MONTH DAY HOUR MINUTE [SECOND [MILLISECOND]]",
		Short: "Resolve a wall-clock reading to an instant",
		Args:  cobra.RangeArgs(6, 8),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseNaiveTime(args[1:])
			if err != nil {
				return err
			}
			t.PreferLater = later
			if err := t.Validate(); err != nil {
				return fmt.Errorf("invalid time %s: %w", t, err)
			}

			a, err := opts.reg.Resolve(cmd.Context(), args[0], t)
			switch {
			case errors.Is(err, civiltime.ErrNonExistent):
				failure.Fprintf(cmd.OutOrStdout(), "%s never happened in %s\n", t, args[0])
				return err
			case err != nil:
				return err
			}
			printAware(cmd.OutOrStdout(), a)
			return nil
		},
	}
	cmd.Flags().BoolVar(&later, "later", false, "Pick the later instant if the reading occurred twice")
	return cmd
}

func lookupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup ZONE EPOCH_MILLIS",
		Short: "Show the wall-clock reading of an instant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instant, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid instant %q: %w", args[1], err)
			}
			a, err := opts.reg.FromInstant(cmd.Context(), args[0], instant)
			if err != nil {
				return err
			}
			printAware(cmd.OutOrStdout(), a)
			return nil
		},
	}
}

func transitionsCmd(opts *options) *cobra.Command {
	var since, until int
	cmd := &cobra.Command{
		Use:   "transitions ZONE",
		Short: "List the offset regimes of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := opts.reg.Table(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			lo := time.Date(since, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
			hi := time.Date(until, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
			printRegimes(cmd.OutOrStdout(), tbl, lo, hi)
			return nil
		},
	}
	now := time.Now().Year()
	cmd.Flags().IntVar(&since, "since", now, "First year to list")
	cmd.Flags().IntVar(&until, "until", now+1, "Year to stop listing at")
	return cmd
}

func diffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "diff ZONE_A ZONE_B",
		Short: "Compare the offset regimes of two zones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.reg.Table(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := opts.reg.Table(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if diff := cmp.Diff(a.Regimes(), b.Regimes(), cmpopts.IgnoreFields(tztable.Regime{}, "Index")); diff != "" {
				fmt.Fprintf(w, "tables are different: -%s +%s\n", a.Name(), b.Name())
				fmt.Fprintln(w, diff)
			} else {
				fmt.Fprintln(w, "tables are identical")
			}
			return nil
		},
	}
}

// parseNaiveTime parses YEAR MONTH DAY HOUR MINUTE [SECOND [MILLISECOND]].
func parseNaiveTime(args []string) (civiltime.NaiveTime, error) {
	names := []string{"year", "month", "day", "hour", "minute", "second", "millisecond"}
	var fields [7]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return civiltime.NaiveTime{}, fmt.Errorf("invalid %s %q: %w", names[i], a, err)
		}
		fields[i] = n
	}
	return civiltime.NaiveTime{
		Year:        fields[0],
		Month:       fields[1],
		Day:         fields[2],
		Hour:        fields[3],
		Minute:      fields[4],
		Second:      fields[5],
		Millisecond: fields[6],
	}, nil
}

func printAware(w io.Writer, a civiltime.AwareTime) {
	headline.Fprintln(w, a)
	fmt.Fprintf(w, "  instant  %d\n", a.Instant)
	fmt.Fprintf(w, "  utc      %s\n", time.UnixMilli(a.Instant).UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(w, "  offset   %d minutes west of UTC\n", a.Offset)
	fmt.Fprintf(w, "  later    %t\n", a.Later)
}

// printRegimes prints the regimes of tbl that overlap [lo, hi).
func printRegimes(w io.Writer, tbl *tztable.Table, lo, hi int64) {
	headline.Fprintln(w, tbl.Name())
	for _, rg := range tbl.Regimes() {
		if rg.Until <= lo || rg.From >= hi {
			continue
		}
		fmt.Fprintf(w, "  %-25s %-25s %6d %-6s ", formatInstant(rg.From), formatInstant(rg.Until), rg.Offset, rg.Abbreviation)
		if rg.Index == 0 {
			faint.Fprintln(w, "initial")
			continue
		}
		prev := tbl.Regime(rg.Index - 1)
		switch {
		case rg.Offset < prev.Offset:
			forward.Fprintf(w, "forward %s\n", time.Duration(prev.Offset-rg.Offset)*time.Minute)
		case rg.Offset > prev.Offset:
			backward.Fprintf(w, "backward %s\n", time.Duration(rg.Offset-prev.Offset)*time.Minute)
		default:
			faint.Fprintln(w, "rename")
		}
	}
}

func formatInstant(ms int64) string {
	switch ms {
	case tztable.MinInstant:
		return "-inf"
	case tztable.MaxInstant:
		return "+inf"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
