// Command validate cross-checks an input GHCN daily CSV against the station
// report files produced from it. It re-runs the projection in memory and
// verifies each output file structurally (row count, labels, ascending year
// columns) and cell-for-cell against the expected matrix.
//
// Usage:
//
//	go run ./cmd/validate -input weather.csv -dir .
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "GHCN daily CSV the reports were generated from")
	dir := flag.String("dir", ".", "directory containing the station report files")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *dir); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, dir string) int {
	corpus, err := loadCorpus(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load input: %v\n", err)
		return 1
	}

	fmt.Println("=== Station Report Validation ===")
	fmt.Println()

	allPassed := true
	for _, st := range corpus.Stations() {
		p := validateStation(dir, st)
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			allPassed = false
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("validation failed")
		return 1
	}
	fmt.Printf("all %d station reports consistent\n", corpus.Len())
	return 0
}

// loadCorpus re-parses the input file exactly as the exporter does.
func loadCorpus(path string) (*domain.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	headerRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	headers, err := domain.ResolveHeaders(headerRow)
	if err != nil {
		return nil, err
	}

	corpus := domain.NewCorpus()
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			return corpus, nil
		}
		if err != nil {
			return nil, err
		}
		line++
		obs, err := domain.ParseRow(row, headers)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		corpus.Add(obs)
	}
}

// validateStation checks one station's report file against a freshly
// projected matrix. The generation-date line is skipped: it is the one line
// allowed to differ between runs.
func validateStation(dir string, st *domain.Station) *phase {
	p := &phase{name: st.ID}
	path := filepath.Join(dir, st.ID+".csv")

	records, err := readReport(path)
	if err != nil {
		p.errorf("read report: %v", err)
		return p
	}

	// encoding/csv drops the blank separator lines on read, leaving:
	// title, attribution, generated-on, header, then the data rows.
	const preamble = 4
	if len(records) != preamble+domain.MatrixRows {
		p.errorf("expected %d records, got %d", preamble+domain.MatrixRows, len(records))
		return p
	}

	expected := domain.Project(st).Render()
	// Render keeps the blank lines; drop them and the generated-on line to
	// compare: title, attribution, header, rows.
	want := [][]string{expected[0], expected[1]}
	want = append(want, expected[5:]...)
	got := [][]string{records[0], records[1]}
	got = append(got, records[3:]...)

	years := st.Years()
	header := records[3]
	if len(header) != 2+len(years) {
		p.errorf("header has %d columns, want %d", len(header), 2+len(years))
	}

	for i, wantRec := range want {
		if i >= len(got) {
			break
		}
		if !equalRecords(got[i], wantRec) {
			p.errorf("record %d mismatch: got %q, want %q", i, got[i], wantRec)
			if len(p.errors) > 5 {
				p.errorf("(further mismatches suppressed)")
				return p
			}
		}
	}
	return p
}

func readReport(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func equalRecords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
