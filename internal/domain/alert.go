package domain

// Limits are the regulatory concentration ceilings. A value equal to its limit
// does not alert.
type Limits struct {
	CO2  float64
	SO2  float64
	NO2  float64
	PM25 float64
}

// DefaultLimits are the fixed thresholds applied to every evaluation context.
var DefaultLimits = Limits{CO2: 1000, SO2: 20, NO2: 40, PM25: 25}

// Limit returns the ceiling for p.
func (l Limits) Limit(p Pollutant) float64 {
	return Reading(l).Value(p)
}

// Exceeded lists the pollutants in r that strictly exceed their limit, in
// column order. An empty result means no alert.
func (l Limits) Exceeded(r Reading) []Pollutant {
	var over []Pollutant
	for _, p := range Pollutants() {
		if r.Value(p) > l.Limit(p) {
			over = append(over, p)
		}
	}
	return over
}

// Evaluate reports whether any single pollutant in r exceeds its limit.
func (l Limits) Evaluate(r Reading) bool {
	return r.CO2 > l.CO2 || r.SO2 > l.SO2 || r.NO2 > l.NO2 || r.PM25 > l.PM25
}

// Evaluate applies DefaultLimits to r.
func Evaluate(r Reading) bool {
	return DefaultLimits.Evaluate(r)
}

// AlertContext names which reading an alert was evaluated against.
type AlertContext string

const (
	AlertCurrent    AlertContext = "current"
	AlertForecast   AlertContext = "forecast"
	AlertHistorical AlertContext = "historical"
)

// AlertContexts returns every evaluation context in reporting order.
func AlertContexts() []AlertContext {
	return []AlertContext{AlertCurrent, AlertForecast, AlertHistorical}
}

// Alerts holds the three independently evaluated alert flags for one zone.
type Alerts struct {
	Current    bool `json:"current"`
	Forecast   bool `json:"forecast"`
	Historical bool `json:"historical"`
}

// Fused is the flag recommendations are based on: current OR forecast.
// Historical is intentionally excluded.
func (a Alerts) Fused() bool {
	return a.Current || a.Forecast
}

// Get returns the flag for ctx.
func (a Alerts) Get(ctx AlertContext) bool {
	switch ctx {
	case AlertCurrent:
		return a.Current
	case AlertForecast:
		return a.Forecast
	case AlertHistorical:
		return a.Historical
	default:
		return false
	}
}
