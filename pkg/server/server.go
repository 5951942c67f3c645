/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server runs an in-memory fake of the Stellar Burgers API. It
// reproduces the status codes and messages of the public service so the
// suites can run hermetically.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/stellar-burgers/api-tests/pkg/server/handler"
	"github.com/stellar-burgers/api-tests/pkg/store"
)

type Server struct {
	options *Options
	logger  *zap.Logger
	metrics *Metrics
}

func New(options *Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		options: options,
		logger:  logger,
		metrics: NewMetrics(),
	}
}

// DefaultOptions returns options suitable for an in-process fake.
func DefaultOptions() *Options {
	return &Options{
		ListenAddress:   ":8080",
		ReadTimeout:     time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Handler:         *handler.DefaultOptions(),
	}
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			zap.String("id", chimiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"success":false,"message":"Not found"}`))
}

// Handler builds the routed API backed by a fresh store.
func (s *Server) Handler() (http.Handler, error) {
	storeOptions := []store.Option{
		store.WithRefreshTokenTTL(s.options.Handler.RefreshTokenTTL),
	}

	h, err := handler.New(store.New(storeOptions...), &s.options.Handler, s.logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.logging)
	router.Use(s.metrics.Middleware)
	router.NotFound(notFound)

	router.Handle("/metrics", s.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.PostApiAuthRegister)
			r.Post("/login", h.PostApiAuthLogin)
			r.Post("/logout", h.PostApiAuthLogout)
			r.Post("/token", h.PostApiAuthToken)
			r.Get("/user", h.GetApiAuthUser)
			r.Patch("/user", h.PatchApiAuthUser)
			r.Delete("/user", h.DeleteApiAuthUser)
		})

		r.Get("/ingredients", h.GetApiIngredients)
		r.Post("/orders", h.PostApiOrders)
		r.Get("/orders", h.GetApiOrders)
		r.Get("/orders/all", h.GetApiOrdersAll)
	})

	return router, nil
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	router, err := s.Handler()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         s.options.ListenAddress,
		ReadTimeout:  s.options.ReadTimeout,
		WriteTimeout: s.options.WriteTimeout,
		Handler:      router,
	}

	errs := make(chan error, 1)

	go func() {
		s.logger.Info("listening", zap.String("address", s.options.ListenAddress))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
