package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/domain"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/observability"
)

// Extractor streams header-resolved data rows from the input source.
type Extractor interface {
	Headers() domain.Headers
	// Next returns the next data row and its line number in the source,
	// or io.EOF when the source is exhausted.
	Next() ([]string, int, error)
}

// Loader writes one station's rendered report records to its destination.
type Loader interface {
	LoadStation(stationID string, records [][]string) error
}

// SummaryPublisher receives a compact summary after a station's report has
// been written. Optional; the pipeline accepts nil.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, s domain.StationSummary) error
}

// Pipeline runs the single-pass export: stream rows into observations,
// bucket them by station, then project and write one matrix per station in
// first-appearance order.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	publisher SummaryPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. publisher may be nil to disable summary publishing.
func New(e Extractor, l Loader, publisher SummaryPublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes the export. The first parse or write fault aborts the whole
// run; station files already fully written stay on disk.
func (p *Pipeline) Run(ctx context.Context) error {
	corpus, rows, err := p.collect(ctx)
	if err != nil {
		return err
	}

	p.metrics.StationsFound.Add(float64(corpus.Len()))

	for _, st := range corpus.Stations() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.export(ctx, st); err != nil {
			return err
		}
	}

	p.logger.Info("run complete", "stations", corpus.Len(), "rows", rows)
	return nil
}

// collect drains the extractor into a corpus, returning the number of rows
// parsed.
func (p *Pipeline) collect(ctx context.Context) (*domain.Corpus, int, error) {
	corpus := domain.NewCorpus()
	headers := p.extractor.Headers()
	rows := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, rows, err
		}

		row, line, err := p.extractor.Next()
		if errors.Is(err, io.EOF) {
			return corpus, rows, nil
		}
		if err != nil {
			p.metrics.ParseErrors.Inc()
			return nil, rows, fmt.Errorf("read input: %w", err)
		}

		obs, err := domain.ParseRow(row, headers)
		if err != nil {
			p.metrics.ParseErrors.Inc()
			return nil, rows, fmt.Errorf("line %d: %w", line, err)
		}

		corpus.Add(obs)
		rows++
		p.metrics.RowsParsed.Inc()
	}
}

// export projects one station and writes its report, then notifies the
// summary publisher. Publish failures are logged, not fatal: the file on
// disk is the contract, the summary is telemetry.
func (p *Pipeline) export(ctx context.Context, st *domain.Station) error {
	m := domain.Project(st)

	if m.Overwrites > 0 {
		p.logger.Warn("duplicate day/year observations overwritten",
			"station", st.ID, "count", m.Overwrites)
	}
	p.metrics.LeapDaysSkipped.Add(float64(m.LeapDaysSkipped))
	p.metrics.DuplicateCells.Add(float64(m.Overwrites))

	if err := p.loader.LoadStation(st.ID, m.Render()); err != nil {
		return err
	}
	p.metrics.ReportsWritten.Inc()

	p.logger.Debug("station exported",
		"station", st.ID,
		"years", len(m.Years),
		"leap_days_skipped", m.LeapDaysSkipped,
	)

	if p.publisher != nil {
		if err := p.publisher.PublishSummary(ctx, m.Summary()); err != nil {
			p.logger.Warn("summary publish failed", "station", st.ID, "error", err)
		}
	}
	return nil
}
