// Package server exposes the compiler over HTTP.
//
//	GET  /healthz               liveness probe
//	GET  /v1/types              every column type kind with a sample rendering
//	POST /v1/compile[?format=]  YAML or JSON declarations in, HCL (or sql) out
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/generator"
	"github.com/koustreak/graphix/internal/logger"
)

// MaxBodyBytes caps the size of a declaration document.
const MaxBodyBytes = 1 << 20

// Config holds listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the graphix HTTP API.
type Server struct {
	cfg    Config
	log    *logger.Logger
	gen    *generator.Generator
	router chi.Router
}

// New builds the router. Generation runs with DDL enabled so both output
// formats are available per request.
func New(cfg Config, log *logger.Logger, options ...generator.Option) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		cfg: cfg,
		log: log.Component("server"),
		gen: generator.New(generator.Options{DDL: true}, options...),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/types", s.handleTypes)
		r.Post("/compile", s.handleCompile)
	})
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.With().Str("addr", s.cfg.Addr).Logger().Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errs.Wrap(errs.ErrKindConnectionFailed, "server stopped", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.With().Err(err).Logger().Error("graceful shutdown failed")
		return errs.Wrap(errs.ErrKindTimeout, "graceful shutdown failed", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errs.Wrap(errs.ErrKindConnectionFailed, "server stopped", err)
	}
	s.log.Info("server stopped")
	return nil
}

// requestLogger writes one access-log event per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.log.HTTPEvent(status).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
