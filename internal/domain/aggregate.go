package domain

// Average computes the unweighted per-pollutant mean over the whole series.
func Average(series ZoneSeries) Reading {
	var sum Reading
	for _, r := range series {
		sum.CO2 += r.CO2
		sum.SO2 += r.SO2
		sum.NO2 += r.NO2
		sum.PM25 += r.PM25
	}
	return Reading{
		CO2:  sum.CO2 / SeriesLength,
		SO2:  sum.SO2 / SeriesLength,
		NO2:  sum.NO2 / SeriesLength,
		PM25: sum.PM25 / SeriesLength,
	}
}
