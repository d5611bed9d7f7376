package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestAssess_CleanZone(t *testing.T) {
	series := uniformSeries(steadyReading)
	a := Assess(Norte, series, ClimateReading{WindSpeed: 4}, DefaultLimits)

	assert.Equal(t, Norte, a.Zone)
	assert.Equal(t, steadyReading, a.Current)
	assert.Equal(t, steadyReading, a.Average)
	assert.InDelta(t, 0.8, a.WindFactor, 1e-12)
	assert.InDelta(t, steadyReading.CO2*0.8, a.Forecast.CO2, 1e-9)
	assert.Equal(t, Alerts{}, a.Alerts)
	assert.Equal(t, "Pollution levels acceptable in zone 2. Maintain constant monitoring.", a.Recommendation)
}

func TestAssess_CurrentSpikeOnly(t *testing.T) {
	series := uniformSeries(steadyReading)
	series[SeriesLength-1] = Reading{CO2: 400, SO2: 90, NO2: 30, PM25: 18}

	a := Assess(Centro, series, ClimateReading{WindSpeed: 10}, DefaultLimits)

	assert.True(t, a.Alerts.Current)
	assert.False(t, a.Alerts.Forecast, "wind halves the weighted SO2")
	assert.False(t, a.Alerts.Historical)
	assert.Contains(t, a.Recommendation, "Reduce vehicle traffic")
	assert.Contains(t, a.Recommendation, "zone 1.")
}

func TestAssess_HistoricalAlertDoesNotDriveRecommendation(t *testing.T) {
	// Old pollution lifts the unweighted mean over the limit while the recent,
	// heavily weighted days and the last day are clean.
	var series ZoneSeries
	for i := 0; i < 10; i++ {
		series[i] = Reading{PM25: 120}
	}

	a := Assess(Valle, series, ClimateReading{WindSpeed: 10}, DefaultLimits)

	assert.True(t, a.Alerts.Historical)
	assert.False(t, a.Alerts.Current)
	assert.False(t, a.Alerts.Forecast)
	assert.False(t, a.Alerts.Fused())
	assert.Equal(t, Recommend(Valle, false), a.Recommendation)
}

func TestAssess_FlagsAreIndependent(t *testing.T) {
	series := uniformSeries(Reading{NO2: 45})

	calm := Assess(Sur, series, ClimateReading{}, DefaultLimits)
	windy := Assess(Sur, series, ClimateReading{WindSpeed: 10}, DefaultLimits)

	assert.Equal(t, Alerts{Current: true, Forecast: true, Historical: true}, calm.Alerts)
	assert.Equal(t, Alerts{Current: true, Forecast: false, Historical: true}, windy.Alerts)

	windy.Alerts.Forecast = true
	assert.True(t, windy.Alerts.Historical)
	assert.True(t, windy.Alerts.Current)
	assert.Equal(t, Alerts{Current: true, Forecast: true, Historical: true}, calm.Alerts)
}

func TestAssessment_Reading(t *testing.T) {
	a := Assessment{
		Current:  Reading{CO2: 1},
		Forecast: Reading{CO2: 2},
		Average:  Reading{CO2: 3},
	}
	assert.InDelta(t, 1.0, a.Reading(AlertCurrent).CO2, 0)
	assert.InDelta(t, 2.0, a.Reading(AlertForecast).CO2, 0)
	assert.InDelta(t, 3.0, a.Reading(AlertHistorical).CO2, 0)
}

func TestNewAnalysis_UsesPackageClock(t *testing.T) {
	fixed := time.Date(2025, time.March, 3, 8, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	a := NewAnalysis("run-1")
	assert.Equal(t, "run-1", a.RunID)
	assert.Equal(t, fixed, a.GeneratedAt)
}

func TestAnalysis_AlertCount(t *testing.T) {
	var a Analysis
	a.Zones[Centro].Alerts = Alerts{Current: true}
	a.Zones[Sur].Alerts = Alerts{Current: true, Historical: true}
	a.Zones[Pintag].Alerts = Alerts{Forecast: true}

	assert.Equal(t, 2, a.AlertCount(AlertCurrent))
	assert.Equal(t, 1, a.AlertCount(AlertForecast))
	assert.Equal(t, 1, a.AlertCount(AlertHistorical))
}
