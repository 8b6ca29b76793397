package unixtime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFromCivil(t *testing.T) {
	cases := []struct {
		year, month, day, hour, minute, second, milli int
	}{
		{1970, 1, 1, 0, 0, 0, 0},
		{1969, 12, 31, 23, 59, 59, 999},
		{1990, 5, 27, 19, 0, 0, 0},
		{2000, 2, 29, 12, 30, 15, 250},
		{2019, 3, 31, 2, 30, 0, 0},
		{2019, 10, 27, 2, 30, 0, 0},
		{2040, 12, 27, 18, 0, 0, 0},
		{1800, 3, 1, 0, 0, 0, 0},
		{2100, 2, 28, 23, 59, 59, 999},

		// Normalization
		{2019, 13, 1, 0, 0, 0, 0},
		{2019, 0, 1, 0, 0, 0, 0},
		{2019, -11, 15, 0, 0, 0, 0},
		{2019, 2, 30, 0, 0, 0, 0},
		{2019, 3, 0, 0, 0, 0, 0},
		{2019, 3, 31, 24, 0, 0, 0},
		{2019, 3, 31, -1, 0, 0, 0},
		{2019, 3, 31, 0, 90, 0, 0},
		{2019, 3, 31, 0, 0, 0, 1500},
	}
	for _, c := range cases {
		got := FromCivil(c.year, c.month, c.day, c.hour, c.minute, c.second, c.milli)
		want := time.Date(c.year, time.Month(c.month), c.day, c.hour, c.minute, c.second, c.milli*int(time.Millisecond), time.UTC).UnixMilli()
		if got != want {
			t.Errorf("FromCivil(%+v) = %d, want %d", c, got, want)
		}
	}
}

func TestToCivil(t *testing.T) {
	type fields struct {
		Year, Month, Day, Hour, Minute, Second, Millisecond int
	}
	cases := []struct {
		in   int64
		want fields
	}{
		{0, fields{1970, 1, 1, 0, 0, 0, 0}},
		{-1, fields{1969, 12, 31, 23, 59, 59, 999}},
		{1572136200000, fields{2019, 10, 27, 0, 30, 0, 0}},
		{951827415250, fields{2000, 2, 29, 12, 30, 15, 250}},
	}
	for _, c := range cases {
		var got fields
		got.Year, got.Month, got.Day, got.Hour, got.Minute, got.Second, got.Millisecond = ToCivil(c.in)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("ToCivil(%d) mismatch (-want +got):\n%s", c.in, diff)
		}
		if back := FromCivil(got.Year, got.Month, got.Day, got.Hour, got.Minute, got.Second, got.Millisecond); back != c.in {
			t.Errorf("FromCivil(ToCivil(%d)) = %d", c.in, back)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2019, 1, 31},
		{2019, 2, 28},
		{2020, 2, 29},
		{1900, 2, 28},
		{2000, 2, 29},
		{2019, 4, 30},
		{2019, 12, 31},
		{2019, 0, 0},
		{2019, 13, 0},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}
