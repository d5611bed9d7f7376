package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSaver struct {
	saved []domain.Analysis
	err   error
}

func (m *mockSaver) SaveReport(_ context.Context, analysis domain.Analysis) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, analysis)
	return nil
}

func (m *mockSaver) Path() string { return "/data/reporte_contaminacion.txt" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAnalysis() domain.Analysis {
	a := domain.Analysis{RunID: "run-7", GeneratedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	var series domain.ZoneSeries
	for i := range series {
		series[i] = domain.Reading{CO2: 400, SO2: 5, NO2: 20, PM25: 10}
	}
	for _, z := range domain.Zones() {
		a.Zones[z] = domain.Assess(z, series, domain.ClimateReading{WindSpeed: 2}, domain.DefaultLimits)
	}
	series[domain.SeriesLength-1].NO2 = 90
	a.Zones[domain.Norte] = domain.Assess(domain.Norte, series, domain.ClimateReading{}, domain.DefaultLimits)
	return a
}

func runSession(t *testing.T, input string, saver *mockSaver) (string, *observability.Metrics) {
	t.Helper()
	fake := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 8, 5, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	if saver == nil {
		saver = &mockSaver{}
	}
	metrics, _ := observability.NewMetricsForTesting()
	var out bytes.Buffer
	s := NewSession(strings.NewReader(input), &out, testAnalysis(), saver, discardLogger(), metrics)
	require.NoError(t, s.Run(context.Background()))
	return out.String(), metrics
}

func TestSession_ExitImmediately(t *testing.T) {
	out, _ := runSession(t, "0\n", nil)

	assert.Contains(t, out, "Analysis run-7 generated 5 minutes ago.")
	assert.Contains(t, out, "1. List zones and select one")
	assert.Contains(t, out, "0. Exit")
	assert.Contains(t, out, sessionGoodbye)
	assert.Equal(t, 1, strings.Count(out, "Menu:"))
}

func TestSession_EOFEndsSession(t *testing.T) {
	out, _ := runSession(t, "", nil)
	assert.Contains(t, out, sessionGoodbye)
}

func TestSession_InvalidInputReprompts(t *testing.T) {
	out, _ := runSession(t, "abc\n9\n\n0\n", nil)

	assert.Equal(t, 2, strings.Count(out, invalidInput), "non-numeric and empty lines")
	assert.Equal(t, 1, strings.Count(out, invalidOption))
	assert.Equal(t, 4, strings.Count(out, "Menu:"))
}

func TestSession_SelectZone(t *testing.T) {
	out, _ := runSession(t, "1\n2\n0\n", nil)

	assert.Contains(t, out, "Available zones:")
	assert.Contains(t, out, "5. Pintag")
	assert.Contains(t, out, "Results for zone: Norte")
	assert.Contains(t, out, "|  30 |  400.00 |    5.00 |   90.00 |   10.00 |")
	assert.Contains(t, out, "Current alert: YES")
	assert.Contains(t, out, domain.Recommend(domain.Norte, true))
	assert.NotContains(t, out, "Results for zone: Centro")
}

func TestSession_SelectZoneOutOfRange(t *testing.T) {
	for _, in := range []string{"0", "6", "-1", "x"} {
		t.Run(in, func(t *testing.T) {
			out, _ := runSession(t, "1\n"+in+"\n0\n", nil)
			assert.Contains(t, out, invalidZone)
			assert.NotContains(t, out, "Results for zone:")
			assert.Contains(t, out, sessionGoodbye)
		})
	}
}

func TestSession_ShowAll(t *testing.T) {
	out, _ := runSession(t, "2\n0\n", nil)

	for _, z := range domain.Zones() {
		assert.Contains(t, out, "Results for zone: "+z.Name())
	}
	assert.Equal(t, 1, strings.Count(out, "Current alert: YES"))
	assert.Equal(t, 4, strings.Count(out, "Current alert: NO"))
}

func TestSession_SaveReport(t *testing.T) {
	saver := &mockSaver{}
	out, metrics := runSession(t, "3\n0\n", saver)

	require.Len(t, saver.saved, 1)
	assert.Equal(t, "run-7", saver.saved[0].RunID)
	assert.Contains(t, out, "Report saved to /data/reporte_contaminacion.txt")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsWritten), 0)
}

func TestSession_SaveReportFailureContinues(t *testing.T) {
	saver := &mockSaver{err: errors.New("disk full")}
	out, metrics := runSession(t, "3\n2\n0\n", saver)

	assert.Contains(t, out, "Error saving the report.")
	assert.Contains(t, out, "Results for zone: Pintag")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportErrors), 0)
}

func TestSession_Search(t *testing.T) {
	tests := []struct {
		term string
		want []string
		none bool
	}{
		{term: "nor", want: []string{"2. Norte"}},
		{term: "E", want: []string{"1. Centro", "2. Norte", "4. Valle"}},
		{term: "quito", none: true},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			out, _ := runSession(t, "4\n"+tt.term+"\n0\n", nil)
			if tt.none {
				assert.Contains(t, out, "No zones match 'quito'.")
				return
			}
			assert.Contains(t, out, "Zones matching '"+tt.term+"':")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestSession_CancelledContext(t *testing.T) {
	metrics, _ := observability.NewMetricsForTesting()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(strings.NewReader("2\n"), io.Discard, testAnalysis(), &mockSaver{}, discardLogger(), metrics)
	require.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestRenderZone(t *testing.T) {
	a := testAnalysis().Zones[domain.Centro]

	var buf bytes.Buffer
	require.NoError(t, RenderZone(&buf, a))
	out := buf.String()

	assert.Contains(t, out, "Results for zone: Centro")
	assert.Equal(t, domain.SeriesLength, strings.Count(out, "|  400.00 |"))
	assert.Contains(t, out, "Historical averages:\nCO2: 400.00, SO2: 5.00, NO2: 20.00, PM2.5: 10.00\n")
	assert.Contains(t, out, "Wind factor: 0.90")
	assert.Contains(t, out, "Current alert: NO")
	assert.Contains(t, out, "Historical alert: NO")
	assert.Contains(t, out, "Recommendation: "+domain.Recommend(domain.Centro, false))
}
