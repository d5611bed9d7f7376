package domain

import "fmt"

// SeriesLength is the fixed number of daily readings held per zone.
const SeriesLength = 30

// Pollutant names one of the four measured concentrations.
type Pollutant string

const (
	CO2  Pollutant = "CO2"
	SO2  Pollutant = "SO2"
	NO2  Pollutant = "NO2"
	PM25 Pollutant = "PM2.5"
)

// Pollutants lists every pollutant in file column order.
func Pollutants() []Pollutant {
	return []Pollutant{CO2, SO2, NO2, PM25}
}

// Reading holds the four pollutant concentrations measured at one instant.
type Reading struct {
	CO2  float64 `json:"co2"`
	SO2  float64 `json:"so2"`
	NO2  float64 `json:"no2"`
	PM25 float64 `json:"pm25"`
}

// Value returns the concentration of p. Unknown pollutants yield 0.
func (r Reading) Value(p Pollutant) float64 {
	switch p {
	case CO2:
		return r.CO2
	case SO2:
		return r.SO2
	case NO2:
		return r.NO2
	case PM25:
		return r.PM25
	default:
		return 0
	}
}

// Scale multiplies every concentration by f.
func (r Reading) Scale(f float64) Reading {
	return Reading{
		CO2:  r.CO2 * f,
		SO2:  r.SO2 * f,
		NO2:  r.NO2 * f,
		PM25: r.PM25 * f,
	}
}

// Validate rejects negative concentrations.
func (r Reading) Validate() error {
	for _, p := range Pollutants() {
		if v := r.Value(p); v < 0 {
			return fmt.Errorf("%s concentration %g is negative", p, v)
		}
	}
	return nil
}

func (r Reading) String() string {
	return fmt.Sprintf("CO2: %.2f, SO2: %.2f, NO2: %.2f, PM2.5: %.2f", r.CO2, r.SO2, r.NO2, r.PM25)
}

// ZoneSeries is one zone's daily readings, oldest first. The array length is
// fixed so a series can never be partially populated or resized.
type ZoneSeries [SeriesLength]Reading

// Latest returns the most recent day's reading.
func (s ZoneSeries) Latest() Reading {
	return s[SeriesLength-1]
}

// ClimateReading holds the current weather for one zone. The zero value is
// used for zones absent from the climate file and means calm, 0°C, 0% humidity.
type ClimateReading struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    float64 `json:"humidity"`
}
