// Command genmock writes a deterministic sample data directory: one
// historical file per zone and a climate file. It then loads the files back
// through the real loaders and prints the resulting alert state, so the
// output is known to parse and the chosen zones are known to alert.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/sample -seed 7 -polluted Sur,Valle
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/air-quality-forecast/internal/adapter/flatfile"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// baseline is a clean reading for each zone; noise is added on top.
var baseline = domain.ZoneMap[domain.Reading]{
	domain.Centro: {CO2: 620, SO2: 8, NO2: 28, PM25: 14},
	domain.Norte:  {CO2: 540, SO2: 6, NO2: 22, PM25: 11},
	domain.Sur:    {CO2: 700, SO2: 10, NO2: 31, PM25: 17},
	domain.Valle:  {CO2: 480, SO2: 5, NO2: 18, PM25: 9},
	domain.Pintag: {CO2: 410, SO2: 3, NO2: 12, PM25: 7},
}

var climate = domain.ZoneMap[domain.ClimateReading]{
	domain.Centro: {Temperature: 16.5, WindSpeed: 3.2, Humidity: 68},
	domain.Norte:  {Temperature: 15.1, WindSpeed: 4.8, Humidity: 72},
	domain.Sur:    {Temperature: 14.3, WindSpeed: 1.5, Humidity: 75},
	domain.Valle:  {Temperature: 21.7, WindSpeed: 2.1, Humidity: 58},
	domain.Pintag: {Temperature: 12.9, WindSpeed: 6.4, Humidity: 81},
}

const climateHeader = "Zona,Temperatura,Viento,Humedad"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write the sample files into")
	seed := flag.Uint64("seed", 1, "random seed for reproducible noise")
	pollutedFlag := flag.String("polluted", "", "comma-separated zone names whose readings trend above the limits")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	polluted, err := parseZones(*pollutedFlag)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	files := flatfile.DefaultHistoricalFiles()
	for _, z := range domain.Zones() {
		series := generateSeries(rng, baseline[z], polluted[z])
		path := filepath.Join(*outDir, files[z])
		if err := writeLines(path, seriesLines(series)); err != nil {
			return fmt.Errorf("writing %s history: %w", z.Name(), err)
		}
		log.Printf("%s: wrote %s", z.Name(), path)
	}

	climatePath := filepath.Join(*outDir, flatfile.DefaultClimateFile)
	if err := writeLines(climatePath, climateLines()); err != nil {
		return fmt.Errorf("writing climate file: %w", err)
	}
	log.Printf("wrote climate file: %s", climatePath)

	return printSummary(*outDir, climatePath)
}

func parseZones(list string) (domain.ZoneMap[bool], error) {
	var set domain.ZoneMap[bool]
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		z, ok := domain.ParseZoneName(name)
		if !ok {
			return set, fmt.Errorf("unknown zone %q in -polluted", name)
		}
		set[z] = true
	}
	return set, nil
}

// generateSeries adds up to ±10% noise to base. Polluted series ramp
// linearly to twice the limits by the last day.
func generateSeries(rng *rand.Rand, base domain.Reading, polluted bool) domain.ZoneSeries {
	var s domain.ZoneSeries
	for i := range s {
		r := base.Scale(0.9 + 0.2*rng.Float64())
		if polluted {
			ramp := float64(i+1) / domain.SeriesLength
			target := domain.Reading(domain.DefaultLimits).Scale(2)
			r = domain.Reading{
				CO2:  r.CO2 + ramp*(target.CO2-r.CO2),
				SO2:  r.SO2 + ramp*(target.SO2-r.SO2),
				NO2:  r.NO2 + ramp*(target.NO2-r.NO2),
				PM25: r.PM25 + ramp*(target.PM25-r.PM25),
			}
		}
		s[i] = r
	}
	return s
}

func seriesLines(s domain.ZoneSeries) []string {
	lines := make([]string, 0, len(s))
	for _, r := range s {
		lines = append(lines, fmt.Sprintf("%.2f %.2f %.2f %.2f", r.CO2, r.SO2, r.NO2, r.PM25))
	}
	return lines
}

func climateLines() []string {
	lines := []string{climateHeader}
	for _, z := range domain.Zones() {
		c := climate[z]
		lines = append(lines, fmt.Sprintf("%s,%.1f,%.1f,%.1f", z.Name(), c.Temperature, c.WindSpeed, c.Humidity))
	}
	return lines
}

func writeLines(path string, lines []string) error {
	data := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(data), 0o600)
}

// printSummary loads the written files and prints the alert state per zone.
func printSummary(dir, climatePath string) error {
	ctx := context.Background()
	snapshot, err := flatfile.NewClimateLoader(climatePath).LoadClimate(ctx)
	if err != nil {
		return fmt.Errorf("reload climate: %w", err)
	}

	loader := flatfile.NewHistoricalLoader(dir)
	fmt.Println("\n=== Sample data summary ===")
	for _, z := range domain.Zones() {
		series, err := loader.LoadSeries(ctx, z)
		if err != nil {
			return fmt.Errorf("reload %s: %w", z.Name(), err)
		}
		a := domain.Assess(z, series, snapshot.Readings[z], domain.DefaultLimits)
		fmt.Printf("%-7s current=%-5t forecast=%-5t historical=%-5t wind_factor=%.2f\n",
			z.Name(), a.Alerts.Current, a.Alerts.Forecast, a.Alerts.Historical, a.WindFactor)
	}
	return nil
}
