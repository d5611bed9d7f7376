package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

const tableRule = "-------------------------------------------------------------"

// RenderZone writes the detail view of one assessment: the daily table,
// averages, forecast, wind factor, alerts, and recommendation.
func RenderZone(out io.Writer, a domain.Assessment) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "\nResults for zone: %s\n", a.Zone.Name())
	fmt.Fprintln(w, tableRule)
	fmt.Fprintln(w, "| Day |   CO2   |   SO2   |   NO2   |  PM2.5  |")
	fmt.Fprintln(w, tableRule)
	for i, r := range a.Series {
		fmt.Fprintf(w, "| %3d | %7.2f | %7.2f | %7.2f | %7.2f |\n", i+1, r.CO2, r.SO2, r.NO2, r.PM25)
	}
	fmt.Fprintln(w, tableRule)
	fmt.Fprintln(w, "Historical averages:")
	fmt.Fprintln(w, a.Average.String())
	fmt.Fprintln(w, "Forecast for the next 24 hours:")
	fmt.Fprintln(w, a.Forecast.String())
	fmt.Fprintf(w, "Wind factor: %.2f\n", a.WindFactor)
	fmt.Fprintf(w, "Current alert: %s\n", yesNo(a.Alerts.Fused()))
	fmt.Fprintf(w, "Historical alert: %s\n", yesNo(a.Alerts.Historical))
	fmt.Fprintf(w, "Recommendation: %s\n\n", a.Recommendation)

	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
