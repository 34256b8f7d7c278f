// Package server exposes the question catalog, assessments, dashboard and
// action plans over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/dashboard"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/store"
)

// Deps are the services behind the API.
type Deps struct {
	Catalog     *questions.Catalog
	Assessments store.AssessmentRepo
	Dashboard   *dashboard.Service
	Plans       *actionplan.Generator
	Auth        *Authenticator
	Logger      *slog.Logger
}

// Options configure the HTTP listener.
type Options struct {
	Addr              string
	AllowedOrigins    []string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server serves the API.
type Server struct {
	deps Deps
	opts Options
	log  *slog.Logger
}

// New returns a Server. Catalog, Assessments, Dashboard, Plans and Auth are required.
func New(deps Deps, opts Options) (*Server, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("server: catalog is required")
	case deps.Assessments == nil:
		return nil, errors.New("server: assessment repo is required")
	case deps.Dashboard == nil:
		return nil, errors.New("server: dashboard is required")
	case deps.Plans == nil:
		return nil, errors.New("server: action plan generator is required")
	case deps.Auth == nil:
		return nil, errors.New("server: authenticator is required")
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 15 * time.Second
	}
	return &Server{deps: deps, opts: opts, log: log}, nil
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.health)
	r.Get("/legal/{page}", s.legalPage)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/questions", s.listQuestions)
		r.Get("/questions/{id}", s.getQuestion)
		r.Get("/modules", s.listModules)

		r.Group(func(r chi.Router) {
			r.Use(s.deps.Auth.Require)
			r.Post("/assessments", s.createAssessment)
			r.Get("/assessments", s.listAssessments)
			r.Get("/assessments/{id}", s.getAssessment)
			r.Post("/assessments/{id}/action-plan", s.actionPlan)
			r.Get("/dashboard", s.dashboard)
		})
	})
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("api listening", "addr", ln.Addr().String(), "catalog", s.deps.Catalog.Version())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"catalog": s.deps.Catalog.Version(),
	})
}
