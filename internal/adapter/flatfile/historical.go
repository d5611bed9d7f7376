package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

var (
	// ErrShortSeries is returned when a historical file ends before SeriesLength readings.
	ErrShortSeries = errors.New("not enough daily readings")

	// ErrFieldCount is returned when a line does not hold exactly four values.
	ErrFieldCount = errors.New("expected 4 values: co2 so2 no2 pm25")
)

// DefaultHistoricalFiles returns the conventional per-zone file names,
// e.g. historico_centro.txt.
func DefaultHistoricalFiles() domain.ZoneMap[string] {
	var files domain.ZoneMap[string]
	for _, z := range domain.Zones() {
		files[z] = fmt.Sprintf("historico_%s.txt", z.Slug())
	}
	return files
}

// HistoricalLoader reads one fixed-length series file per zone.
// It implements pipeline.SeriesLoader.
type HistoricalLoader struct {
	dir   string
	files domain.ZoneMap[string]
}

// NewHistoricalLoader creates a loader resolving the default file names in dir.
func NewHistoricalLoader(dir string) *HistoricalLoader {
	return &HistoricalLoader{dir: dir, files: DefaultHistoricalFiles()}
}

// Path returns the file the loader reads for zone.
func (l *HistoricalLoader) Path(zone domain.ZoneID) string {
	return filepath.Join(l.dir, l.files[zone])
}

// LoadSeries reads exactly SeriesLength readings for zone. Each non-blank line
// holds four whitespace-separated non-negative numbers. Any failure is a
// *LoadError naming the file and line.
func (l *HistoricalLoader) LoadSeries(ctx context.Context, zone domain.ZoneID) (domain.ZoneSeries, error) {
	if err := ctx.Err(); err != nil {
		return domain.ZoneSeries{}, err
	}
	if !zone.Valid() {
		return domain.ZoneSeries{}, fmt.Errorf("load series: unknown zone %d", int(zone))
	}

	path := l.Path(zone)
	f, err := os.Open(path)
	if err != nil {
		return domain.ZoneSeries{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var series domain.ZoneSeries
	day := 0
	lineNum := 0
	scanner := bufio.NewScanner(f)
	for day < domain.SeriesLength && scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		r, err := parseReadingLine(line)
		if err != nil {
			return domain.ZoneSeries{}, &LoadError{Path: path, Line: lineNum, Err: fmt.Errorf("day %d: %w", day+1, err)}
		}
		series[day] = r
		day++
	}
	if err := scanner.Err(); err != nil {
		return domain.ZoneSeries{}, &LoadError{Path: path, Line: lineNum + 1, Err: err}
	}
	if day < domain.SeriesLength {
		return domain.ZoneSeries{}, &LoadError{
			Path: path,
			Line: lineNum + 1,
			Err:  fmt.Errorf("%w: got %d of %d", ErrShortSeries, day, domain.SeriesLength),
		}
	}

	return series, nil
}

// parseReadingLine parses "co2 so2 no2 pm25".
func parseReadingLine(line string) (domain.Reading, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return domain.Reading{}, fmt.Errorf("%w, got %d", ErrFieldCount, len(fields))
	}

	var vals [4]float64
	for i, field := range fields {
		v, err := parseFinite(field)
		if err != nil {
			return domain.Reading{}, fmt.Errorf("%s: %w", domain.Pollutants()[i], err)
		}
		vals[i] = v
	}

	r := domain.Reading{CO2: vals[0], SO2: vals[1], NO2: vals[2], PM25: vals[3]}
	if err := r.Validate(); err != nil {
		return domain.Reading{}, err
	}
	return r, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}
