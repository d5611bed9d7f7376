// Command validate performs offline integrity checks on an air quality data
// directory before it is handed to airq: every historical file parses to a
// full series, the climate file covers every zone, and the resulting
// analysis is internally consistent.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data/sample [-strict]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/air-quality-forecast/internal/adapter/flatfile"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", ".", "directory containing historical and climate files")
	climateFile := flag.String("climate-file", flatfile.DefaultClimateFile, "climate file name, relative to -data-dir unless absolute")
	strict := flag.Bool("strict", false, "treat skipped climate rows and missing zones as failures")
	flag.Parse()

	path := *climateFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(*dataDir, path)
	}
	os.Exit(run(*dataDir, path, *strict))
}

func run(dataDir, climatePath string, strict bool) int {
	ctx := context.Background()

	fmt.Println("=== Air Quality Data Validation ===")
	fmt.Println()

	histPhase, series := validateHistorical(ctx, dataDir)
	climatePhase, snapshot := validateClimate(ctx, climatePath, strict)
	phases := []*phase{histPhase, climatePhase}
	if histPhase.passed() && climatePhase.passed() {
		phases = append(phases, validateAnalysis(series, snapshot))
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
		for _, w := range p.warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Historical files ──

func validateHistorical(ctx context.Context, dir string) (*phase, domain.ZoneMap[domain.ZoneSeries]) {
	p := &phase{name: "Phase 1: Historical series"}
	var all domain.ZoneMap[domain.ZoneSeries]

	loader := flatfile.NewHistoricalLoader(dir)
	for _, z := range domain.Zones() {
		s, err := loader.LoadSeries(ctx, z)
		if err != nil {
			var le *flatfile.LoadError
			if errors.As(err, &le) && le.Line > 0 {
				p.errorf("%s: %s line %d: %v", z.Name(), le.Path, le.Line, le.Err)
			} else {
				p.errorf("%s: %v", z.Name(), err)
			}
			continue
		}
		all[z] = s
	}
	return p, all
}

// ── Phase 2: Climate file ──

func validateClimate(ctx context.Context, path string, strict bool) (*phase, domain.ClimateSnapshot) {
	p := &phase{name: "Phase 2: Climate coverage"}

	snapshot, err := flatfile.NewClimateLoader(path).LoadClimate(ctx)
	if err != nil {
		p.errorf("%v", err)
		return p, snapshot
	}

	report := p.warnf
	if strict {
		report = p.errorf
	}
	for _, row := range snapshot.Skipped {
		report("line %d skipped (%s): %q %s", row.Line, row.Reason, row.Text, row.Detail)
	}
	if missing := snapshot.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, z := range missing {
			names[i] = z.Name()
		}
		report("no climate row for %s; zero values will be used", strings.Join(names, ", "))
	}
	return p, snapshot
}

// ── Phase 3: Analysis consistency ──

func validateAnalysis(series domain.ZoneMap[domain.ZoneSeries], snapshot domain.ClimateSnapshot) *phase {
	p := &phase{name: "Phase 3: Analysis consistency"}

	for _, z := range domain.Zones() {
		a := domain.Assess(z, series[z], snapshot.Readings[z], domain.DefaultLimits)
		for _, ctx := range domain.AlertContexts() {
			r := a.Reading(ctx)
			for _, pol := range domain.Pollutants() {
				if v := r.Value(pol); math.IsNaN(v) || math.IsInf(v, 0) {
					p.errorf("%s: %s %s is not finite", z.Name(), ctx, pol)
				}
			}
		}
		if a.WindFactor < 0.5 || a.WindFactor > 1 {
			p.errorf("%s: wind factor %g outside [0.5, 1]", z.Name(), a.WindFactor)
		}
		if want := fmt.Sprintf("zone %d", z.Number()); !strings.Contains(a.Recommendation, want) {
			p.errorf("%s: recommendation %q does not name %s", z.Name(), a.Recommendation, want)
		}
		fmt.Printf("  %-7s current=%-5t forecast=%-5t historical=%-5t\n",
			z.Name(), a.Alerts.Current, a.Alerts.Forecast, a.Alerts.Historical)
	}
	fmt.Println()
	return p
}
