package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/domain"
)

// Reader streams data rows from a GHCN daily CSV file. Header resolution
// happens at Open time so a missing required column fails before any data
// row is touched. It implements pipeline.Extractor.
type Reader struct {
	file    *os.File
	csv     *csv.Reader
	headers domain.Headers
	line    int
}

// Open opens the input file and resolves its header row.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	r := csv.NewReader(f)
	headerRow, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header row: %w", err)
	}
	headers, err := domain.ResolveHeaders(headerRow)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Reader{file: f, csv: r, headers: headers, line: 1}, nil
}

// Headers returns the resolved column indices.
func (r *Reader) Headers() domain.Headers {
	return r.headers
}

// Next returns the next data row and its 1-based line number in the input
// file. It returns io.EOF when the input is exhausted.
func (r *Reader) Next() ([]string, int, error) {
	row, err := r.csv.Read()
	if err != nil {
		return nil, 0, err
	}
	r.line++
	return row, r.line, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
