// Dorkroom Core
// Copyright (c) 2026 The Dorkroom Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dorkroom Core.
//
// Dorkroom Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dorkroom Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dorkroom Core.  If not, see <http://www.gnu.org/licenses/>.

// Package api serves the catalog index over a read-only JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	apimiddleware "github.com/narrowstacks/dorkroom-core/pkg/api/middleware"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const (
	RequestTimeout    = 30 * time.Second
	ShutdownTimeout   = 5 * time.Second
	DefaultSearchSize = 10
)

// Loader fetches a fresh copy of the catalog collections.
type Loader func(ctx context.Context) (catalog.Collections, error)

// Options configures a Server. Index is required.
type Options struct {
	Index    *catalog.Index
	Load     Loader
	Registry *prometheus.Registry
	Clock    clockwork.Clock
	// AllowedOrigins defaults to any origin.
	AllowedOrigins    []string
	RequestsPerMinute int
	Burst             int
	SearchLimit       int
}

type Server struct {
	idx            *catalog.Index
	load           Loader
	limiter        *apimiddleware.IPRateLimiter
	metrics        *Metrics
	allowedOrigins []string
	searchLimit    int
}

func NewServer(opts Options) *Server {
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 120
	}
	if opts.Burst <= 0 {
		opts.Burst = 20
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchSize
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"https://*", "http://*"}
	}

	s := &Server{
		idx:            opts.Index,
		load:           opts.Load,
		limiter:        apimiddleware.NewIPRateLimiter(opts.RequestsPerMinute, opts.Burst, opts.Clock),
		metrics:        NewMetrics(opts.Registry),
		allowedOrigins: opts.AllowedOrigins,
		searchLimit:    opts.SearchLimit,
	}
	if stats, err := s.idx.Stats(); err == nil {
		s.metrics.observeStats(stats)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Handle("/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(apimiddleware.HTTPRateLimitMiddleware(s.limiter))

		r.Route("/films", func(r chi.Router) {
			r.Get("/", s.handleListFilms)
			r.Get("/search", s.handleSearchFilms)
			r.Get("/{id}", s.handleGetFilm)
			r.Get("/{id}/combinations", s.handleFilmCombinations)
		})
		r.Route("/developers", func(r chi.Router) {
			r.Get("/", s.handleListDevelopers)
			r.Get("/search", s.handleSearchDevelopers)
			r.Get("/{id}", s.handleGetDeveloper)
			r.Get("/{id}/combinations", s.handleDeveloperCombinations)
		})
		r.Route("/combinations", func(r chi.Router) {
			r.Get("/", s.handleListCombinations)
			r.Get("/search", s.handleSearchCombinations)
			r.Get("/{id}", s.handleGetCombination)
		})
		r.Get("/search", s.handleSearchAll)
		r.Get("/resolve/film", s.handleResolveFilm)
		r.Get("/resolve/developer", s.handleResolveDeveloper)
		r.Get("/stops", s.handleStops)
		r.Get("/stats", s.handleStats)
		r.Post("/reload", s.handleReload)
	})

	return r
}

// Reload fetches the catalog through the configured Loader and publishes
// it. On error the current catalog stays in place.
func (s *Server) Reload(ctx context.Context) error {
	if s.load == nil {
		return errors.New("no catalog loader configured")
	}
	c, err := s.load(ctx)
	if err == nil {
		err = s.idx.Load(c)
	}
	s.metrics.observeLoad(err)
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	if stats, err := s.idx.Stats(); err == nil {
		s.metrics.observeStats(stats)
	}
	return nil
}

// Serve listens on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.limiter.StartCleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting api server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	log.Info().Msg("stopping api server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown failed: %w", err)
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
