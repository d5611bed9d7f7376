package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// DefaultClimateFile is the conventional climate file name.
const DefaultClimateFile = "datos_del_clima.txt"

// minClimateLineLen is the shortest raw line, terminator included, that can hold a row.
const minClimateLineLen = 10

// ErrMissingHeader is returned when the climate file has no header line.
var ErrMissingHeader = errors.New("missing header line")

// ClimateLoader reads the shared climate file: a header line followed by
// "ZoneName,temperature,windSpeed,humidity" rows.
// It implements pipeline.ClimateLoader.
type ClimateLoader struct {
	path string
}

// NewClimateLoader creates a loader for the climate file at path.
func NewClimateLoader(path string) *ClimateLoader {
	return &ClimateLoader{path: path}
}

// Path returns the climate file location.
func (l *ClimateLoader) Path() string {
	return l.path
}

// LoadClimate materializes the whole file before returning. Malformed rows and
// rows naming unknown zones are recorded in Skipped and do not fail the load;
// when a zone appears more than once the last row wins. A missing file or
// header is a *LoadError.
func (l *ClimateLoader) LoadClimate(ctx context.Context) (domain.ClimateSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClimateSnapshot{}, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return domain.ClimateSnapshot{}, &LoadError{Path: l.path, Err: err}
	}
	defer f.Close()

	return parseClimate(l.path, f)
}

func parseClimate(path string, src io.Reader) (domain.ClimateSnapshot, error) {
	r := bufio.NewReader(src)

	header, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || header == "") {
		if errors.Is(err, io.EOF) {
			err = ErrMissingHeader
		}
		return domain.ClimateSnapshot{}, &LoadError{Path: path, Line: 1, Err: err}
	}

	var snap domain.ClimateSnapshot
	lineNum := 1
	for {
		raw, err := r.ReadString('\n')
		if raw != "" {
			lineNum++
			applyClimateLine(&snap, lineNum, raw)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.ClimateSnapshot{}, &LoadError{Path: path, Line: lineNum + 1, Err: err}
		}
	}

	return snap, nil
}

func applyClimateLine(snap *domain.ClimateSnapshot, lineNum int, raw string) {
	if len(raw) < minClimateLineLen {
		return
	}
	text := strings.TrimRight(raw, "\r\n")

	name, reading, err := parseClimateRow(text)
	if err != nil {
		snap.Skipped = append(snap.Skipped, domain.SkippedRow{
			Line: lineNum, Text: text, Reason: domain.SkipMalformed, Detail: err.Error(),
		})
		return
	}

	zone, ok := domain.ParseZoneName(name)
	if !ok {
		snap.Skipped = append(snap.Skipped, domain.SkippedRow{
			Line: lineNum, Text: text, Reason: domain.SkipUnknownZone, Detail: fmt.Sprintf("unknown zone %q", name),
		})
		return
	}

	snap.Readings[zone] = reading
	snap.Reported[zone] = true
}

// parseClimateRow parses "ZoneName,temperature,windSpeed,humidity". Trailing
// fields after humidity are ignored.
func parseClimateRow(text string) (string, domain.ClimateReading, error) {
	fields := strings.Split(text, ",")
	if len(fields) < 4 {
		return "", domain.ClimateReading{}, fmt.Errorf("expected 4 comma-separated fields, got %d", len(fields))
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return "", domain.ClimateReading{}, errors.New("empty zone name")
	}

	var vals [3]float64
	for i, field := range fields[1:4] {
		v, err := parseFinite(strings.TrimSpace(field))
		if err != nil {
			return "", domain.ClimateReading{}, fmt.Errorf("field %d: %w", i+2, err)
		}
		vals[i] = v
	}
	if vals[1] < 0 {
		return "", domain.ClimateReading{}, fmt.Errorf("negative wind speed %g", vals[1])
	}

	return name, domain.ClimateReading{Temperature: vals[0], WindSpeed: vals[1], Humidity: vals[2]}, nil
}
