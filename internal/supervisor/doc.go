// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package supervisor runs the cinegraph server's long-lived services under
suture v4:

	cinegraph
	├── data-layer
	│   └── graph-service   startup build, scheduled rebuilds, cache cleanup
	└── api-layer
	    └── http-server

A service that returns an error is restarted after backoff; returning once
its context ends is a normal stop. Supervisor events are logged through
sutureslog, which the server points at the zerolog bridge in the logging
package.

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.Add(supervisor.LayerData, services.NewGraphService(engine, graphCfg, logger))
	tree.Add(supervisor.LayerAPI, services.NewHTTPService(srv, 10*time.Second))
	err := <-tree.ServeBackground(ctx)
*/
package supervisor
