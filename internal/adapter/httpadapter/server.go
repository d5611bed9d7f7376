package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AnalysisSource provides the most recent completed analysis.
type AnalysisSource interface {
	sharedobs.ReadinessChecker
	Latest() (domain.Analysis, bool)
}

// Server exposes health, readiness, metrics, and the latest assessments over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /assessments routes. Metrics are served from gatherer.
func NewServer(addr string, source AnalysisSource, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(source))
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /assessments", handleAssessments(source))
	mux.HandleFunc("GET /assessments/{zone}", handleZoneAssessment(source))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type zoneView struct {
	Zone       string `json:"zone"`
	ZoneNumber int    `json:"zone_number"`
	FusedAlert bool   `json:"fused_alert"`
	domain.Assessment
}

type analysisView struct {
	RunID       string     `json:"run_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Zones       []zoneView `json:"zones"`
}

func newZoneView(a domain.Assessment) zoneView {
	return zoneView{
		Zone:       a.Zone.Name(),
		ZoneNumber: a.Zone.Number(),
		FusedAlert: a.Alerts.Fused(),
		Assessment: a,
	}
}

func handleAssessments(source AnalysisSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		analysis, ok := source.Latest()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no analysis available"})
			return
		}
		view := analysisView{
			RunID:       analysis.RunID,
			GeneratedAt: analysis.GeneratedAt,
			Zones:       make([]zoneView, 0, domain.ZoneCount),
		}
		for _, z := range domain.Zones() {
			view.Zones = append(view.Zones, newZoneView(analysis.Zones[z]))
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// handleZoneAssessment accepts a zone name in any case or its 1-based number.
func handleZoneAssessment(source AnalysisSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone, ok := resolveZone(r.PathValue("zone"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown zone"})
			return
		}
		analysis, ok := source.Latest()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no analysis available"})
			return
		}
		writeJSON(w, http.StatusOK, newZoneView(analysis.Zones[zone]))
	}
}

func resolveZone(key string) (domain.ZoneID, bool) {
	for _, z := range domain.Zones() {
		if key == z.Slug() || key == z.Name() {
			return z, true
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return -1, false
	}
	return domain.ZoneFromNumber(n)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
