package domain

import (
	"fmt"
	"time"
)

// MatrixRows is the number of day slots in a normalized year. Feb-29 is
// excluded so every year, leap or not, maps onto the same 365 rows.
const MatrixRows = 365

// labelEpoch is Jan 1 of a non-leap year, used only to turn a row index back
// into a "Mon-D" calendar label. Any non-leap year works; which actual years
// contributed data is irrelevant to the label.
var labelEpoch = time.Date(1975, time.January, 1, 0, 0, 0, 0, time.UTC)

// IsLeapYear reports whether year is a Gregorian leap year: divisible by 4,
// except centuries, which must be divisible by 400.
func IsLeapYear(year int) bool {
	if year%100 == 0 {
		return year%400 == 0
	}
	return year%4 == 0
}

// DayOfYear returns the 1-based ordinal day of (year, month, day) within its
// own calendar year, using the closed-form formula from Meeus, Astronomical
// Algorithms, 2nd ed., chapter 7. In leap years the result ranges over
// [1, 366], otherwise [1, 365].
func DayOfYear(year, month, day int) int {
	k := 2
	if IsLeapYear(year) {
		k = 1
	}
	// The inner division must floor before multiplying by k.
	return (275*month)/9 - k*((month+9)/12) + day - 30
}

// NormalizedDayOfYear maps a date into the fixed 365-slot day space.
// Feb-29 has no slot: it returns (0, false) and the caller is expected to
// drop the observation. Dates after February in a leap year are shifted back
// by one so that Mar-1 and everything after it land on the same slot in every
// year. The returned day is always in [1, 365] when ok is true.
func NormalizedDayOfYear(year, month, day int) (doy int, ok bool) {
	if month == 2 && day == 29 {
		return 0, false
	}
	doy = DayOfYear(year, month, day)
	if IsLeapYear(year) && month > 2 {
		doy--
	}
	return doy, true
}

// RowLabel renders a zero-based matrix row index as a human-readable
// "Mon-D" calendar label, e.g. 0 -> "Jan-1", 364 -> "Dec-31".
func RowLabel(row int) string {
	d := labelEpoch.AddDate(0, 0, row)
	return fmt.Sprintf("%s-%d", d.Month().String()[:3], d.Day())
}
