package http

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
	"github.com/couchcryptid/sec-shares-service/internal/view"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// cikParam is the query-string key carrying the requested CIK.
const cikParam = "CIK"

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// ShareLookup runs one share range lookup.
type ShareLookup interface {
	Run(ctx context.Context, rawCIK string) domain.Outcome
}

// Server exposes the share range page and API plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	lookup     ShareLookup
	formatter  *view.Formatter
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/shares, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, lookup ShareLookup, ready sharedobs.ReadinessChecker, formatter *view.Formatter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
		lookup:    lookup,
		formatter: formatter,
		logger:    logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/shares", s.handleAPI)
	mux.HandleFunc("GET /favicon.ico", handleFavicon)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

// handlePage renders the share range page. Failed lookups still render with
// 200 and placeholder text.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	outcome := s.lookup.Run(r.Context(), r.URL.Query().Get(cikParam))
	page := view.Render(outcome, s.formatter)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	outcome := s.lookup.Run(r.Context(), r.URL.Query().Get(cikParam))
	if outcome.Status == domain.OutcomeOK {
		sharedobs.WriteJSON(w, http.StatusOK, outcome.Range)
		return
	}
	sharedobs.WriteJSON(w, apiStatus(outcome.Kind), map[string]string{
		"error": apiMessage(outcome.Kind),
		"kind":  string(outcome.Kind),
	})
}

// apiMessage is the caller-facing text for a failed lookup. The wrapped
// error only goes to the log.
func apiMessage(kind domain.ErrorKind) string {
	switch kind {
	case domain.KindValidation:
		return domain.ErrInvalidCIK.Error()
	case domain.KindParse:
		return domain.ErrMalformedResponse.Error()
	case domain.KindData:
		return domain.ErrNoValidData.Error()
	default:
		return "failed to fetch data"
	}
}

func apiStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
