package flatfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// DefaultReportFile is the conventional report file name.
const DefaultReportFile = "reporte_contaminacion.txt"

// ReportWriter saves the plain-text analysis report.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a writer targeting path.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Path returns the report destination.
func (w *ReportWriter) Path() string {
	return w.path
}

// SaveReport renders the analysis and replaces the report file. The file is
// written to a temporary sibling and renamed, so a failed save never leaves a
// truncated report behind. There are no retries.
func (w *ReportWriter) SaveReport(ctx context.Context, analysis domain.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, analysis); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("save report %s: %w", w.path, err)
	}
	return nil
}

// RenderReport writes one block per zone: the numbered 30-day table followed
// by the 24-hour forecast.
func RenderReport(out io.Writer, analysis domain.Analysis) error {
	var b bytes.Buffer

	b.WriteString("Pollution and forecast report\n")
	if analysis.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", analysis.RunID)
	}
	if !analysis.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n", analysis.GeneratedAt.UTC().Format(time.RFC3339))
	}
	b.WriteString("\n")

	for _, z := range domain.Zones() {
		a := analysis.Zones[z]
		fmt.Fprintf(&b, "Zone %d (%s):\n", z.Number(), z.Name())
		fmt.Fprintf(&b, "Historical data (last %d days):\n", domain.SeriesLength)
		b.WriteString("Day\tCO2\tSO2\tNO2\tPM2.5\n")
		for i, r := range a.Series {
			fmt.Fprintf(&b, "%d\t%.2f\t%.2f\t%.2f\t%.2f\n", i+1, r.CO2, r.SO2, r.NO2, r.PM25)
		}
		b.WriteString("Forecast for the next 24 hours:\n")
		fmt.Fprintf(&b, "%s\n\n", a.Forecast)
	}

	if _, err := out.Write(b.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
