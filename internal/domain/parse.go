package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// dateRe matches the GHCN daily date format, e.g. "2020-03-01".
var dateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

var (
	// ErrMissingColumn indicates a required header is absent from the input.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedDate indicates a DATE field that is not a valid YYYY-MM-DD date.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedTemperature indicates a non-empty temperature field that is
	// not a finite number.
	ErrMalformedTemperature = errors.New("malformed temperature")
	// ErrShortRow indicates a data row with fewer fields than the header.
	ErrShortRow = errors.New("row has fewer fields than header")
)

// requiredColumns are matched case-sensitively against the header row.
var requiredColumns = []string{"STATION", "NAME", "DATE", "TMAX", "TMIN", "TAVG"}

// Headers resolves GHCN column names to their positions in the input file's
// header row. The six required indices are always valid; the recognized
// optional columns are -1 when absent.
type Headers struct {
	Station int
	Name    int
	Date    int
	TMax    int
	TMin    int
	TAvg    int

	// Recognized but unused by the projection.
	ACMH int
	PRCP int
	PSUN int

	fieldCount int
}

// ResolveHeaders builds a Headers from the first row of the input file.
// Header names are exact, case-sensitive matches; a missing required column
// is an error before any data row is touched.
func ResolveHeaders(headerRow []string) (Headers, error) {
	index := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, name := range requiredColumns {
		if _, found := index[name]; !found {
			return Headers{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	optional := func(name string) int {
		if i, found := index[name]; found {
			return i
		}
		return -1
	}

	return Headers{
		Station:    index["STATION"],
		Name:       index["NAME"],
		Date:       index["DATE"],
		TMax:       index["TMAX"],
		TMin:       index["TMIN"],
		TAvg:       index["TAVG"],
		ACMH:       optional("ACMH"),
		PRCP:       optional("PRCP"),
		PSUN:       optional("PSUN"),
		fieldCount: len(headerRow),
	}, nil
}

// ParseRow converts one data row into an Observation. It is a pure
// construction: no state is touched, and the first fault wins.
func ParseRow(row []string, h Headers) (Observation, error) {
	if len(row) < h.fieldCount {
		return Observation{}, fmt.Errorf("%w: got %d, want %d", ErrShortRow, len(row), h.fieldCount)
	}

	year, month, day, err := parseDate(row[h.Date])
	if err != nil {
		return Observation{}, err
	}

	tmax, err := parseTemp("TMAX", row[h.TMax])
	if err != nil {
		return Observation{}, err
	}
	tmin, err := parseTemp("TMIN", row[h.TMin])
	if err != nil {
		return Observation{}, err
	}
	tavg, err := parseTemp("TAVG", row[h.TAvg])
	if err != nil {
		return Observation{}, err
	}

	return Observation{
		Year:        year,
		Month:       month,
		Day:         day,
		StationID:   row[h.Station],
		StationName: row[h.Name],
		TMax:        tmax,
		TMin:        tmin,
		TAvg:        tavg,
	}, nil
}

// parseDate validates a YYYY-MM-DD field against the pattern and the
// Gregorian calendar. "2021-02-29" matches the pattern but is rejected
// because no such date exists.
func parseDate(text string) (year, month, day int, err error) {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedDate, text)
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return 0, 0, 0, fmt.Errorf("%w: %q is not a calendar date", ErrMalformedDate, text)
	}
	return year, month, day, nil
}

// parseTemp turns raw field text into a Temp. Empty text is the missing
// sentinel, never zero. Non-empty text must be a finite number; anything
// else is rejected rather than smuggled through as a NaN-style marker.
func parseTemp(column, raw string) (Temp, error) {
	if raw == "" {
		return Temp{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Temp{}, fmt.Errorf("%w: %s=%q", ErrMalformedTemperature, column, raw)
	}
	return Temp{Raw: raw, Value: v, Present: true}, nil
}
