// Package unixtime converts between civil date-time fields and Unix
// millisecond timestamps in the proleptic Gregorian calendar.
//
// Civil fields are always read as if they were UTC. Callers that need a
// local reading shift the result by an offset themselves.
package unixtime

import "time"

// FromCivil converts the given date and time to a Unix timestamp in
// milliseconds, i.e. the number of milliseconds since 1970-01-01 00:00:00 UTC.
// It ignores leap seconds but respects leap years.
//
// Out-of-range fields are normalized rather than rejected: month 13 is January
// of the following year, day 0 is the last day of the previous month, hour 24
// is midnight of the next day and so on.
//
// This implementation is based on the Go standard library's time package but
// does not depend on time.Location. Interpreting civil fields in some zone is
// exactly what the callers of this package are trying to do, so borrowing a
// time.Location here would be circular.
func FromCivil(year, month, day, hour, minute, second, millisecond int) int64 {
	year, month = normalizeMonth(year, month)

	d := daysSinceEpoch(year) + daysBeforeMonth[month-1]
	if month > 2 && IsLeapYear(year) {
		d++ // +leap day
	}
	// Negative values wrap around and are unwrapped by the final conversion.
	d += uint64(int64(day) - 1)

	abs := d*secondsPerDay +
		uint64(int64(hour))*secondsPerHour +
		uint64(int64(minute))*secondsPerMinute +
		uint64(int64(second))
	unix := int64(abs) + (absoluteToInternal + internalToUnix)
	return unix*millisPerSecond + int64(millisecond)
}

// ToCivil is the inverse of FromCivil for normalized fields.
func ToCivil(ms int64) (year, month, day, hour, minute, second, millisecond int) {
	t := time.UnixMilli(ms).UTC()
	var m time.Month
	year, m, day = t.Date()
	hour, minute, second = t.Clock()
	return year, int(m), day, hour, minute, second, t.Nanosecond() / int(time.Millisecond)
}

// normalizeMonth folds a month outside [1, 12] into the year.
func normalizeMonth(year, month int) (int, int) {
	m := month - 1
	year += m / 12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	return year, m + 1
}

// daysBeforeMonth[m] is the number of days in a non-leap year before month m+1.
var daysBeforeMonth = [12]uint64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// The constants were copied from time.go in the Go standard library's time package.
const (
	millisPerSecond  = 1000
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPer400Years  = 365*400 + 97
	daysPer100Years  = 365*100 + 24
	daysPer4Years    = 365*4 + 1

	absoluteZeroYear         = -292277022399
	internalYear             = 1
	absoluteToInternal int64 = (absoluteZeroYear - internalYear) * 365.2425 * secondsPerDay
	unixToInternal     int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * secondsPerDay
	internalToUnix     int64 = -unixToInternal
)

// daysSinceEpoch takes a year and returns the number of days from
// the absolute epoch to the start of that year.
func daysSinceEpoch(year int) uint64 {
	y := uint64(int64(year) - absoluteZeroYear)

	// 400-year cycles
	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	// 100-year cycles
	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	// 4-year cycles
	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	// non-leap years
	d += 365 * y

	return d
}
