package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/domain"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/observability"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

var testHeader = []string{"STATION", "NAME", "DATE", "TMAX", "TMIN", "TAVG"}

type mockExtractor struct {
	rows  [][]string
	index int
}

func (m *mockExtractor) Headers() domain.Headers {
	h, err := domain.ResolveHeaders(testHeader)
	if err != nil {
		panic(err)
	}
	return h
}

func (m *mockExtractor) Next() ([]string, int, error) {
	if m.index >= len(m.rows) {
		return nil, 0, io.EOF
	}
	row := m.rows[m.index]
	m.index++
	return row, m.index + 1, nil
}

type mockLoader struct {
	order   []string
	reports map[string][][]string
	err     error
}

func (m *mockLoader) LoadStation(stationID string, records [][]string) error {
	if m.err != nil {
		return m.err
	}
	if m.reports == nil {
		m.reports = make(map[string][][]string)
	}
	m.order = append(m.order, stationID)
	m.reports[stationID] = records
	return nil
}

type mockPublisher struct {
	summaries []domain.StationSummary
	err       error
}

func (m *mockPublisher) PublishSummary(_ context.Context, s domain.StationSummary) error {
	if m.err != nil {
		return m.err
	}
	m.summaries = append(m.summaries, s)
	return nil
}

func row(station, name, date, tmax string) []string {
	return []string{station, name, date, tmax, "", ""}
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	ext := &mockExtractor{rows: [][]string{
		row("S1", "Alpha", "2020-02-29", "10"),
		row("S1", "Alpha", "2020-03-01", "12"),
		row("S2", "Beta", "2020-03-01", "30"),
		row("S1", "Alpha", "2021-03-01", "9"),
	}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, nil, slog.Default(), metrics)
	require.NoError(t, p.Run(context.Background()))

	require.Equal(t, []string{"S1", "S2"}, ldr.order, "emission order follows first appearance")

	s1 := ldr.reports["S1"]
	require.Len(t, s1, 6+domain.MatrixRows)
	assert.Equal(t, []string{"DOY", "Date", "2020", "2021"}, s1[5])
	assert.Equal(t, []string{"60", "Mar-1", "12", "9"}, s1[6+59])

	s2 := ldr.reports["S2"]
	assert.Equal(t, []string{"DOY", "Date", "2020"}, s2[5])

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.RowsParsed))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.StationsFound))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ReportsWritten))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LeapDaysSkipped))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ParseErrors))
}

func TestPipeline_Run_ParseFaultAborts(t *testing.T) {
	ext := &mockExtractor{rows: [][]string{
		row("S1", "Alpha", "2020-03-01", "12"),
		row("S1", "Alpha", "not-a-date", "13"),
		row("S2", "Beta", "2020-03-01", "30"),
	}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, nil, slog.Default(), metrics)
	err := p.Run(context.Background())

	require.ErrorIs(t, err, domain.ErrMalformedDate)
	assert.Contains(t, err.Error(), "line 3", "fault names the input line")
	assert.Empty(t, ldr.order, "no partial station output")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ParseErrors))
}

func TestPipeline_Run_LoadFaultAborts(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	wantErr := errors.New("disk full")
	ext := &mockExtractor{rows: [][]string{row("S1", "Alpha", "2020-03-01", "12")}}
	ldr := &mockLoader{err: wantErr}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, nil, slog.Default(), metrics)
	err := p.Run(context.Background())

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ReportsWritten))
}

func TestPipeline_Run_DuplicateCellsCounted(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	ext := &mockExtractor{rows: [][]string{
		row("S1", "Alpha", "2020-03-01", "12"),
		row("S1", "Alpha", "2020-03-01", "14"),
	}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, nil, slog.Default(), metrics)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DuplicateCells))
	assert.Equal(t, []string{"60", "Mar-1", "14"}, ldr.reports["S1"][6+59], "last write wins")
}

func TestPipeline_Run_PublishesSummaries(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	ext := &mockExtractor{rows: [][]string{
		row("S1", "Alpha", "2020-03-01", "12"),
		row("S2", "Beta", "2020-03-01", ""),
	}}
	ldr := &mockLoader{}
	pub := &mockPublisher{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, pub, slog.Default(), metrics)
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, pub.summaries, 2)
	assert.Equal(t, "S1", pub.summaries[0].StationID)
	assert.Equal(t, 1, pub.summaries[0].PopulatedCells)
	assert.Equal(t, "S2", pub.summaries[1].StationID)
	assert.Equal(t, 1, pub.summaries[1].MissingCells)
}

func TestPipeline_Run_PublishFailureIsNotFatal(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	ext := &mockExtractor{rows: [][]string{row("S1", "Alpha", "2020-03-01", "12")}}
	ldr := &mockLoader{}
	pub := &mockPublisher{err: errors.New("broker down")}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, pub, slog.Default(), metrics)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"S1"}, ldr.order, "report still written")
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{rows: [][]string{row("S1", "Alpha", "2020-03-01", "12")}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, ldr, nil, slog.Default(), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ldr.order)
}
