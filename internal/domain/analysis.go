package domain

import "time"

// Assessment is the full analysis of a single zone.
type Assessment struct {
	Zone           ZoneID         `json:"-"`
	Series         ZoneSeries     `json:"-"`
	Climate        ClimateReading `json:"climate"`
	Current        Reading        `json:"current"`
	Forecast       Reading        `json:"forecast"`
	Average        Reading        `json:"average"`
	WindFactor     float64        `json:"wind_factor"`
	Alerts         Alerts         `json:"alerts"`
	Recommendation string         `json:"recommendation"`
}

// Assess runs every analysis step for one zone. Each alert flag is evaluated
// against its own reading and none of them reads another.
func Assess(zone ZoneID, series ZoneSeries, climate ClimateReading, limits Limits) Assessment {
	current := series.Latest()
	forecast := Forecast(series, climate)
	average := Average(series)

	alerts := Alerts{
		Current:    limits.Evaluate(current),
		Forecast:   limits.Evaluate(forecast),
		Historical: limits.Evaluate(average),
	}

	return Assessment{
		Zone:           zone,
		Series:         series,
		Climate:        climate,
		Current:        current,
		Forecast:       forecast,
		Average:        average,
		WindFactor:     WindFactor(climate.WindSpeed),
		Alerts:         alerts,
		Recommendation: Recommend(zone, alerts.Fused()),
	}
}

// Reading returns the reading evaluated for ctx.
func (a Assessment) Reading(ctx AlertContext) Reading {
	switch ctx {
	case AlertForecast:
		return a.Forecast
	case AlertHistorical:
		return a.Average
	default:
		return a.Current
	}
}

// Analysis is the result of one complete run over every zone.
type Analysis struct {
	RunID       string
	GeneratedAt time.Time
	Zones       ZoneMap[Assessment]
}

// NewAnalysis creates an empty analysis stamped with the package clock.
func NewAnalysis(runID string) Analysis {
	return Analysis{RunID: runID, GeneratedAt: Now()}
}

// AlertCount returns how many zones raised the alert for ctx.
func (a Analysis) AlertCount(ctx AlertContext) int {
	n := 0
	for _, z := range Zones() {
		if a.Zones[z].Alerts.Get(ctx) {
			n++
		}
	}
	return n
}
