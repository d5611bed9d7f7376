package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
	"github.com/google/uuid"
)

// SeriesLoader reads the fixed-length history of one zone.
type SeriesLoader interface {
	LoadSeries(ctx context.Context, zone domain.ZoneID) (domain.ZoneSeries, error)
}

// ClimateLoader reads the current climate for every zone.
type ClimateLoader interface {
	LoadClimate(ctx context.Context) (domain.ClimateSnapshot, error)
}

// Analyzer turns one zone's inputs into an assessment.
type Analyzer interface {
	Analyze(zone domain.ZoneID, series domain.ZoneSeries, climate domain.ClimateReading) domain.Assessment
}

// Publisher ships a finished analysis to an external sink.
type Publisher interface {
	Publish(ctx context.Context, analysis domain.Analysis) error
}

// Pipeline orchestrates the load-analyze-publish run.
type Pipeline struct {
	series    SeriesLoader
	climate   ClimateLoader
	analyzer  Analyzer
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	latest    atomic.Pointer[domain.Analysis]
	newRunID  func() string
}

// New creates a Pipeline with the given stages and observability.
// Pass a nil publisher to keep results local.
func New(s SeriesLoader, c ClimateLoader, a Analyzer, p Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		series:    s,
		climate:   c,
		analyzer:  a,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		newRunID:  uuid.NewString,
	}
}

// Ready reports whether an analysis has completed.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Latest returns the most recent completed analysis, or false if none has
// completed.
func (p *Pipeline) Latest() (domain.Analysis, bool) {
	a := p.latest.Load()
	if a == nil {
		return domain.Analysis{}, false
	}
	return *a, true
}

// CheckReadiness returns nil once an analysis has completed, or an error
// describing why results are not yet available.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("analysis has not completed yet")
	}
	return nil
}

// Run loads every input, analyzes each zone, and publishes the result.
// Inputs are fully materialized before any analysis starts. A load failure
// aborts the run; a publish failure is logged and does not.
func (p *Pipeline) Run(ctx context.Context) (domain.Analysis, error) {
	start := time.Now()
	runID := p.newRunID()
	logger := p.logger.With("run_id", runID)
	logger.Info("analysis started", "zones", domain.ZoneCount)

	var histories domain.ZoneMap[domain.ZoneSeries]
	for _, z := range domain.Zones() {
		series, err := p.series.LoadSeries(ctx, z)
		if err != nil {
			p.metrics.LoadFailures.WithLabelValues("historical").Inc()
			return domain.Analysis{}, fmt.Errorf("historical data for %s: %w", z.Name(), err)
		}
		histories[z] = series
		logger.Debug("historical data loaded", "zone", z.Name())
	}

	snapshot, err := p.climate.LoadClimate(ctx)
	if err != nil {
		p.metrics.LoadFailures.WithLabelValues("climate").Inc()
		return domain.Analysis{}, fmt.Errorf("climate data: %w", err)
	}
	p.reportClimateGaps(logger, snapshot)

	analysis := domain.NewAnalysis(runID)
	for _, z := range domain.Zones() {
		analysis.Zones[z] = p.analyzer.Analyze(z, histories[z], snapshot.Readings[z])
		p.metrics.ZonesAnalyzed.Inc()
	}
	for _, c := range domain.AlertContexts() {
		p.metrics.Alerts.WithLabelValues(string(c)).Add(float64(analysis.AlertCount(c)))
	}

	p.publish(ctx, logger, analysis)

	p.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	p.metrics.PipelineReady.Set(1)
	p.latest.Store(&analysis)
	p.ready.Store(true)

	logger.Info("analysis complete",
		"current_alerts", analysis.AlertCount(domain.AlertCurrent),
		"forecast_alerts", analysis.AlertCount(domain.AlertForecast),
		"historical_alerts", analysis.AlertCount(domain.AlertHistorical),
	)
	return analysis, nil
}

// reportClimateGaps surfaces skipped rows and zones left at default climate.
func (p *Pipeline) reportClimateGaps(logger *slog.Logger, snapshot domain.ClimateSnapshot) {
	for _, row := range snapshot.Skipped {
		logger.Warn("climate row skipped",
			"line", row.Line,
			"reason", row.Reason,
			"detail", row.Detail,
		)
		p.metrics.ClimateSkipped.WithLabelValues(row.Reason).Inc()
	}
	for _, z := range snapshot.Missing() {
		logger.Warn("no climate row for zone, using zero values", "zone", z.Name())
		p.metrics.ClimateMissing.Inc()
	}
}

func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, analysis domain.Analysis) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, analysis); err != nil {
		logger.Error("publish analysis failed", "error", err)
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.MessagesPublished.Add(domain.ZoneCount)
	logger.Info("analysis published")
}
