// Package domain models NOAA GHCN daily climate observations and their
// projection into per-station day-of-year matrices.
//
// # Data Source
//
// Input files are Global Historical Climatology Network (GHCN) daily
// summaries as exported by NOAA NCEI (https://www.ncdc.noaa.gov/), one CSV
// row per station per day. The columns used here:
//
//	STATION  unique station identifier, e.g. "USW00023183"
//	NAME     human-readable station name, may be empty on some rows
//	DATE     observation date, "YYYY-MM-DD"
//	TMAX     daily maximum temperature
//	TMIN     daily minimum temperature
//	TAVG     daily average temperature
//
// ACMH, PRCP and PSUN are recognized when present but not projected.
// Temperature fields are frequently empty: a station that did not report a
// value leaves the cell blank rather than writing zero. [Temp] keeps that
// distinction explicit instead of relying on a sentinel value.
//
// # Calendar Normalization
//
// The matrix has exactly [MatrixRows] (365) rows, one per day of a
// normalized year. Two rules make leap and non-leap years line up:
//
//   - Feb-29 observations are dropped outright; they have no row.
//   - In a leap year, every date after February shifts back by one day,
//     so Mar-1 occupies the same row in every year.
//
// The raw ordinal day comes from the closed-form formula in Meeus,
// Astronomical Algorithms (see [DayOfYear]); [NormalizedDayOfYear] applies
// both rules and always yields a day in [1, 365].
//
// # Cell States
//
// A matrix cell is blank (no row existed for that day/year), missing (a row
// existed but the field was empty, rendered as ="MISSING"), or a value
// (rendered with the exact text from the input). Duplicate rows for the same
// day and year overwrite last-write-wins; [DayMatrix.Overwrites] exposes the
// count so the loss is not silent.
package domain
