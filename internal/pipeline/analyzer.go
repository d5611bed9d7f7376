package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// ZoneAnalyzer implements Analyzer using the domain analysis functions.
type ZoneAnalyzer struct {
	limits domain.Limits
	logger *slog.Logger
}

// NewAnalyzer creates a ZoneAnalyzer evaluating against limits.
func NewAnalyzer(limits domain.Limits, logger *slog.Logger) *ZoneAnalyzer {
	return &ZoneAnalyzer{
		limits: limits,
		logger: logger,
	}
}

// Analyze assesses one zone and logs every raised alert with the pollutants
// that tripped it.
func (a *ZoneAnalyzer) Analyze(zone domain.ZoneID, series domain.ZoneSeries, climate domain.ClimateReading) domain.Assessment {
	assessment := domain.Assess(zone, series, climate, a.limits)

	for _, ctx := range domain.AlertContexts() {
		if !assessment.Alerts.Get(ctx) {
			continue
		}
		a.logger.Warn("pollution limit exceeded",
			"zone", zone.Name(),
			"context", string(ctx),
			"pollutants", a.limits.Exceeded(assessment.Reading(ctx)),
		)
	}

	a.logger.Debug("zone analyzed",
		"zone", zone.Name(),
		"wind_factor", assessment.WindFactor,
		"fused_alert", assessment.Alerts.Fused(),
	)
	return assessment
}
