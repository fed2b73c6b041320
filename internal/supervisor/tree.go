// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// Layer names a child supervisor of the tree.
type Layer string

const (
	// LayerData owns graph builds.
	LayerData Layer = "data-layer"
	// LayerAPI owns the HTTP server.
	LayerAPI Layer = "api-layer"
)

// TreeConfig controls restart behavior. Zero fields take the
// DefaultTreeConfig value, which matches suture's own defaults.
type TreeConfig struct {
	FailureThreshold float64       // failures tolerated before backing off
	FailureDecay     float64       // seconds for the failure count to halve
	FailureBackoff   time.Duration // pause once the threshold is crossed
	ShutdownTimeout  time.Duration // per-service stop deadline
}

func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

func (c TreeConfig) spec() suture.Spec {
	return suture.Spec{
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// SupervisorTree is the server's process tree: a "cinegraph" root with one
// child supervisor per Layer. Restarting the data layer leaves the API
// layer running, so queries keep being answered from the last good graph.
type SupervisorTree struct {
	root   *suture.Supervisor
	layers map[Layer]*suture.Supervisor
	config TreeConfig
}

// NewSupervisorTree builds the tree. Supervisor events go to logger.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) *SupervisorTree {
	config = config.withDefaults()

	rootSpec := config.spec()
	events := &sutureslog.Handler{Logger: logger}
	rootSpec.EventHook = events.MustHook()

	t := &SupervisorTree{
		root:   suture.New("cinegraph", rootSpec),
		layers: make(map[Layer]*suture.Supervisor, 2),
		config: config,
	}
	// Layers inherit the root's event hook.
	for _, l := range []Layer{LayerData, LayerAPI} {
		sup := suture.New(string(l), config.spec())
		t.root.Add(sup)
		t.layers[l] = sup
	}
	return t
}

// Add runs svc under layer. It panics on an unknown layer.
func (t *SupervisorTree) Add(layer Layer, svc suture.Service) suture.ServiceToken {
	sup, ok := t.layers[layer]
	if !ok {
		panic(fmt.Sprintf("supervisor: unknown layer %q", layer))
	}
	return sup.Add(svc)
}

// Serve blocks until ctx ends or the root gives up.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the tree. The returned channel yields exactly one
// value when the tree stops and is never closed.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that missed their stop deadline.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
