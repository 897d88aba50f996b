package domain

import (
	"fmt"
	"strconv"
	"time"
)

// MissingMarker is written for a cell whose observation existed but carried
// no value for the projected field. The leading ="..." keeps spreadsheet
// imports from treating the token as a label collision with real data.
const MissingMarker = `="MISSING"`

// CellKind distinguishes the three states a matrix cell can be in.
type CellKind int

const (
	// CellBlank means no observation row existed for this day/year at all.
	CellBlank CellKind = iota
	// CellMissing means a row existed but the projected field was empty.
	CellMissing
	// CellValue means a row existed and carried a value.
	CellValue
)

// Cell is one slot of the day-of-year by year grid. Text holds the original
// input text for CellValue cells.
type Cell struct {
	Kind CellKind
	Text string
}

// DayMatrix is one station's TMAX readings arranged as a 365-row by N-year
// grid. It is populated once by Project and read-only afterwards.
type DayMatrix struct {
	StationID   string
	StationName string
	Years       []int

	// LeapDaysSkipped counts Feb-29 observations dropped by normalization.
	LeapDaysSkipped int
	// Overwrites counts cells written more than once (duplicate day/year
	// rows in the input). The last row in input order wins.
	Overwrites int

	cells []Cell // row-major, MatrixRows x len(Years)
}

// StationSummary is the compact per-station record published to the optional
// summary sink after the station's report file is written.
type StationSummary struct {
	StationID       string    `json:"station_id"`
	StationName     string    `json:"station_name"`
	FirstYear       int       `json:"first_year"`
	LastYear        int       `json:"last_year"`
	YearCount       int       `json:"year_count"`
	PopulatedCells  int       `json:"populated_cells"`
	MissingCells    int       `json:"missing_cells"`
	BlankCells      int       `json:"blank_cells"`
	LeapDaysSkipped int       `json:"leap_days_skipped"`
	DuplicateCells  int       `json:"duplicate_cells"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Project builds the day-of-year by year matrix for one station. Years are
// assigned columns in ascending order regardless of input order. Feb-29
// observations are dropped; duplicate (day, year) observations overwrite,
// last in input order winning, with the count recorded in Overwrites.
func Project(st *Station) *DayMatrix {
	years := st.Years()
	yearCol := make(map[int]int, len(years))
	for i, y := range years {
		yearCol[y] = i
	}

	m := &DayMatrix{
		StationID:   st.ID,
		StationName: st.Name,
		Years:       years,
		cells:       make([]Cell, MatrixRows*len(years)),
	}

	for _, obs := range st.Observations {
		doy, ok := NormalizedDayOfYear(obs.Year, obs.Month, obs.Day)
		if !ok {
			m.LeapDaysSkipped++
			continue
		}
		cell := m.at(doy-1, yearCol[obs.Year])
		if cell.Kind != CellBlank {
			m.Overwrites++
		}
		if obs.TMax.Present {
			*cell = Cell{Kind: CellValue, Text: obs.TMax.Raw}
		} else {
			*cell = Cell{Kind: CellMissing}
		}
	}
	return m
}

// Cell returns the cell at (row, col). Row is the zero-based day slot,
// col the year column. Out-of-range access panics, as does slice indexing.
func (m *DayMatrix) Cell(row, col int) Cell {
	return *m.at(row, col)
}

func (m *DayMatrix) at(row, col int) *Cell {
	if row < 0 || row >= MatrixRows || col < 0 || col >= len(m.Years) {
		panic(fmt.Sprintf("matrix index (%d, %d) out of range %dx%d", row, col, MatrixRows, len(m.Years)))
	}
	return &m.cells[row*len(m.Years)+col]
}

// Render produces the CSV records of the station report: a title line, the
// data-source attribution, a blank line, the generation date, another blank
// line, then the column header and exactly MatrixRows data rows. Everything
// except the generation date is a pure function of the matrix.
func (m *DayMatrix) Render() [][]string {
	first, last := m.Years[0], m.Years[len(m.Years)-1]

	records := make([][]string, 0, 6+MatrixRows)
	records = append(records,
		[]string{fmt.Sprintf("Maximum daily temperatures from %s (Station ID: %s), from %d to %d",
			m.StationName, m.StationID, first, last)},
		[]string{"Data From NOAA (https://www.ncdc.noaa.gov/)"},
		[]string{},
		[]string{fmt.Sprintf("Generated on %s", clock.Now().Format("2006-01-02"))},
		[]string{},
	)

	header := make([]string, 0, 2+len(m.Years))
	header = append(header, "DOY", "Date")
	for _, y := range m.Years {
		header = append(header, strconv.Itoa(y))
	}
	records = append(records, header)

	for row := 0; row < MatrixRows; row++ {
		rec := make([]string, 0, 2+len(m.Years))
		rec = append(rec, strconv.Itoa(row+1), RowLabel(row))
		for col := range m.Years {
			switch c := m.Cell(row, col); c.Kind {
			case CellValue:
				rec = append(rec, c.Text)
			case CellMissing:
				rec = append(rec, MissingMarker)
			default:
				rec = append(rec, "")
			}
		}
		records = append(records, rec)
	}
	return records
}

// Summary tallies cell states for the optional downstream sink.
func (m *DayMatrix) Summary() StationSummary {
	s := StationSummary{
		StationID:       m.StationID,
		StationName:     m.StationName,
		FirstYear:       m.Years[0],
		LastYear:        m.Years[len(m.Years)-1],
		YearCount:       len(m.Years),
		LeapDaysSkipped: m.LeapDaysSkipped,
		DuplicateCells:  m.Overwrites,
		GeneratedAt:     clock.Now().UTC(),
	}
	for _, c := range m.cells {
		switch c.Kind {
		case CellValue:
			s.PopulatedCells++
		case CellMissing:
			s.MissingCells++
		default:
			s.BlankCells++
		}
	}
	return s
}
