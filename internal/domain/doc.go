// Package domain models per-zone air-quality measurements and the analysis
// derived from them.
//
// # Data Source
//
// Each monitored zone has a historical file holding exactly [SeriesLength]
// daily readings, oldest first. A single climate file holds the current
// weather for every zone. Both are loaded by the file adapter before any
// analysis runs; this package never performs I/O.
//
// # Zones
//
// Five fixed zones are monitored, identified by [ZoneID]:
//
//	0 Centro   1 Norte   2 Sur   3 Valle   4 Pintag
//
// User-facing output numbers them 1..5 ([ZoneID.Number]).
//
// # Forecast
//
// The 24-hour forecast is a linearly recency-weighted mean over the 30-day
// window. Day i (1-indexed, oldest = 1) gets weight i, so the weights sum to
// 465 and the most recent day counts 30 times as much as the oldest:
//
//	mean = Σ(value_i * i) / Σi
//
// The mean is scaled by a wind attenuation factor:
//
//	factor = max(0.5, 1 - windSpeed*0.05)
//
// Wind of 0 leaves the mean untouched; wind of 10 or more saturates at half.
//
// # Alerts
//
// A reading alerts when any single pollutant strictly exceeds its limit:
//
//	CO2 > 1000   SO2 > 20   NO2 > 40   PM2.5 > 25
//
// Three independent alerts are computed per zone: current (last day),
// forecast, and historical (30-day unweighted mean). Recommendations use only
// current OR forecast ([Alerts.Fused]). The historical alert is reported but
// deliberately left out of the recommendation.
package domain
