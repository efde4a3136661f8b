package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spacesedan/lyricflow/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReportAnalyzer produces the full report for a piece of text.
type ReportAnalyzer interface {
	Report(ctx context.Context, text string) (models.AnalysisReport, error)
}

type Server struct {
	analyzer          ReportAnalyzer
	translatorHealthy *atomic.Bool
	pages             map[string]*template.Template
}

func New(analyzer ReportAnalyzer, translatorHealthy *atomic.Bool) (*Server, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{"index", "result", "error"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("[Server] failed to parse %s template: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Server{
		analyzer:          analyzer,
		translatorHealthy: translatorHealthy,
		pages:             pages,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyzeForm)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyzeJSON)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("[Server] listen failed: %w", err)
	case <-ctx.Done():
		slog.Info("[Server] Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("[Server] Request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)))
	})
}
