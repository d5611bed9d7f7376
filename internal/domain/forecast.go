package domain

const (
	// windAttenuationPerUnit is the fraction of predicted concentration removed
	// per unit of wind speed.
	windAttenuationPerUnit = 0.05

	// minWindFactor caps attenuation: wind never predicts less than half the
	// weighted mean.
	minWindFactor = 0.5
)

// seriesWeightSum is Σi for i in 1..SeriesLength.
const seriesWeightSum = SeriesLength * (SeriesLength + 1) / 2

// WindFactor returns the multiplier applied to the weighted mean for the given
// wind speed: 1 - windSpeed*0.05, floored at 0.5.
func WindFactor(windSpeed float64) float64 {
	f := 1 - windSpeed*windAttenuationPerUnit
	if f < minWindFactor {
		return minWindFactor
	}
	return f
}

// WeightedMean computes the per-pollutant mean with day i (oldest = 1) weighted by i.
func WeightedMean(series ZoneSeries) Reading {
	var sum Reading
	for i, r := range series {
		w := float64(i + 1)
		sum.CO2 += r.CO2 * w
		sum.SO2 += r.SO2 * w
		sum.NO2 += r.NO2 * w
		sum.PM25 += r.PM25 * w
	}
	return Reading{
		CO2:  sum.CO2 / seriesWeightSum,
		SO2:  sum.SO2 / seriesWeightSum,
		NO2:  sum.NO2 / seriesWeightSum,
		PM25: sum.PM25 / seriesWeightSum,
	}
}

// Forecast predicts the next 24 hours of pollutant levels for one zone from its
// series and current climate. It is a pure function of its inputs.
func Forecast(series ZoneSeries, climate ClimateReading) Reading {
	return WeightedMean(series).Scale(WindFactor(climate.WindSpeed))
}
