// Package cli implements the interactive terminal menu over a completed
// analysis.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
	"github.com/dustin/go-humanize"
)

// ReportSaver persists an analysis as a report file.
type ReportSaver interface {
	SaveReport(ctx context.Context, analysis domain.Analysis) error
	Path() string
}

// Menu options.
const (
	optionExit    = 0
	optionSelect  = 1
	optionShowAll = 2
	optionSave    = 3
	optionSearch  = 4
)

const (
	menuPrompt     = "Select an option: "
	zonePrompt     = "Select a zone to view its results: "
	searchPrompt   = "Search term: "
	invalidInput   = "Invalid input. Try again."
	invalidOption  = "Invalid option. Try again."
	invalidZone    = "Invalid selection."
	sessionGoodbye = "Session finished."
)

// Session drives the menu loop. It reads one line per prompt from in and
// writes everything the operator sees to out.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	analysis domain.Analysis
	saver    ReportSaver
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewSession creates a Session over a completed analysis.
func NewSession(in io.Reader, out io.Writer, analysis domain.Analysis, saver ReportSaver, logger *slog.Logger, metrics *observability.Metrics) *Session {
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		analysis: analysis,
		saver:    saver,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run shows the menu until the operator exits, input ends, or ctx is
// cancelled. Invalid input is reported and the menu is shown again; it never
// ends the session.
func (s *Session) Run(ctx context.Context) error {
	s.printf("Analysis %s generated %s.\n", s.analysis.RunID,
		humanize.RelTime(s.analysis.GeneratedAt, domain.Now(), "ago", "from now"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu()
		line, ok := s.readLine(menuPrompt)
		if !ok {
			break
		}
		option, err := strconv.Atoi(line)
		if err != nil {
			s.println(invalidInput)
			continue
		}
		switch option {
		case optionExit:
			s.println(sessionGoodbye)
			return nil
		case optionSelect:
			s.selectZone()
		case optionShowAll:
			s.println("Showing data for every zone:")
			for _, z := range domain.Zones() {
				s.showZone(z)
			}
		case optionSave:
			s.saveReport(ctx)
		case optionSearch:
			s.searchZones()
		default:
			s.println(invalidOption)
		}
	}

	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	s.println("")
	s.println(sessionGoodbye)
	return nil
}

func (s *Session) printMenu() {
	s.println("")
	s.println("Menu:")
	s.println("1. List zones and select one")
	s.println("2. Show data for every zone")
	s.println("3. Save report")
	s.println("4. Search zones")
	s.println("0. Exit")
}

func (s *Session) selectZone() {
	s.println("Available zones:")
	for _, z := range domain.Zones() {
		s.printf("%d. %s\n", z.Number(), z.Name())
	}
	line, ok := s.readLine(zonePrompt)
	if !ok {
		return
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		s.println(invalidZone)
		return
	}
	zone, ok := domain.ZoneFromNumber(n)
	if !ok {
		s.println(invalidZone)
		return
	}
	s.showZone(zone)
}

func (s *Session) searchZones() {
	term, ok := s.readLine(searchPrompt)
	if !ok {
		return
	}
	matches := domain.SearchZones(term)
	if len(matches) == 0 {
		s.printf("No zones match '%s'.\n", term)
		return
	}
	s.printf("Zones matching '%s':\n", term)
	for _, z := range matches {
		s.printf("%d. %s\n", z.Number(), z.Name())
	}
}

func (s *Session) saveReport(ctx context.Context) {
	if err := s.saver.SaveReport(ctx, s.analysis); err != nil {
		s.logger.Error("report save failed", "path", s.saver.Path(), "error", err)
		s.metrics.ReportErrors.Inc()
		s.println("Error saving the report.")
		return
	}
	s.metrics.ReportsWritten.Inc()
	s.logger.Info("report saved", "path", s.saver.Path())
	s.printf("Report saved to %s\n", s.saver.Path())
}

func (s *Session) showZone(zone domain.ZoneID) {
	if err := RenderZone(s.out, s.analysis.Zones[zone]); err != nil {
		s.logger.Error("render zone failed", "zone", zone.Name(), "error", err)
	}
}

// readLine prompts and returns the next trimmed input line. It returns false
// once input is exhausted.
func (s *Session) readLine(prompt string) (string, bool) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line) //nolint:errcheck // terminal output
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...) //nolint:errcheck // terminal output
}
