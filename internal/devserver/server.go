// Package devserver serves the build output during watch sessions,
// with a server-sent-events endpoint that pings browsers after every
// successful rebuild.
package devserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quiltcss/quilt/internal/notify"
)

// Config holds dev server options.
type Config struct {
	// OutDir is the directory served at the site root.
	OutDir string
	// Port to listen on.
	Port int
	// Notifier feeds the reload endpoint.
	Notifier *notify.Notifier
	// Logger is optional; nil discards.
	Logger *slog.Logger
}

// Server is a static file server over the output tree plus a
// /__reload SSE stream.
type Server struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a dev server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{cfg: cfg, logger: logger}
}

// Serve listens until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	r := chi.NewRouter()
	r.Get("/__reload", s.handleReload)
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.OutDir)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("dev server listening", "addr", srv.Addr, "dir", s.cfg.OutDir)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// handleReload streams one "reload" SSE line per rebuild broadcast.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	ch := s.cfg.Notifier.Subscribe()
	defer s.cfg.Notifier.Unsubscribe(ch)

	_, _ = fmt.Fprint(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			_, _ = fmt.Fprint(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}
