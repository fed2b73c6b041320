// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultShutdownGrace bounds how long in-flight queries get to finish.
const DefaultShutdownGrace = 10 * time.Second

// HTTPServer is satisfied by *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService serves the query API under supervision.
//
//	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
//	tree.Add(supervisor.LayerAPI, services.NewHTTPService(srv, 10*time.Second))
type HTTPService struct {
	server HTTPServer
	grace  time.Duration
}

// NewHTTPService wraps server. A non-positive grace selects DefaultShutdownGrace.
func NewHTTPService(server HTTPServer, grace time.Duration) *HTTPService {
	if grace <= 0 {
		grace = DefaultShutdownGrace
	}
	return &HTTPService{server: server, grace: grace}
}

// Serve listens until ctx ends, then shuts the server down gracefully and
// returns ctx.Err(). A listen failure is returned as is so the supervisor
// restarts the service after its backoff.
func (s *HTTPService) Serve(ctx context.Context) error {
	shutdownErr := make(chan error, 1)
	stopWatching := context.AfterFunc(ctx, func() {
		graceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
		defer cancel()
		shutdownErr <- s.server.Shutdown(graceCtx)
	})

	err := s.server.ListenAndServe()
	if stopWatching() {
		// The server stopped on its own; ctx is still live.
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return ctx.Err()
}

func (s *HTTPService) String() string { return "http-server" }
