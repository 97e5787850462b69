// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poiesic/sumry"
	"github.com/poiesic/sumry/core"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8000"

// Summarizer is the subset of *sumry.Service the handlers need.
type Summarizer interface {
	SummarizeURL(ctx context.Context, url string, opts ...sumry.RunOption) (*sumry.Result, error)
	RecentSummaries(ctx context.Context, limit int) ([]*core.SummaryRecord, error)
}

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer     *http.Server
	summarizer     Summarizer
	allowedOrigins []string
	logger         *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.httpServer.Addr = addr
	}
}

// WithAllowedOrigins sets the CORS allowed origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds a Server and wires all routes.
func New(summarizer Summarizer, opts ...Option) (*Server, error) {
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:              DefaultAddr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		summarizer:     summarizer,
		allowedOrigins: []string{"*"},
		logger:         slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpServer.Addr == "" {
		return nil, ErrInvalidAddr
	}

	s.httpServer.Handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/summarize_arxiv", s.handleSummarizeArxiv)
	r.Get("/summaries", s.handleRecentSummaries)

	return r
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
