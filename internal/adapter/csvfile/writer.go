package csvfile

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer emits one report file per station into a directory, overwriting any
// existing file of the same name. It implements pipeline.Loader.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a station report writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// LoadStation writes the rendered records to "{stationID}.csv". The file is
// created only here, after the matrix is fully rendered in memory, so an
// aborted run never leaves a partially-projected station file with a
// complete-looking name alongside finished ones from earlier stations.
func (w *Writer) LoadStation(stationID string, records [][]string) error {
	path := filepath.Join(w.dir, stationID+".csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}

	w.logger.Debug("station report written", "path", path, "records", len(records))
	return nil
}
