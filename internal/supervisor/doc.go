// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package supervisor runs animerec's long-lived services under a suture v4 tree.

	animerec (root)
	├── data-layer       periodic dataset refresh
	├── messaging-layer  dataset event consumer
	└── api-layer        HTTP server

A service that returns an error is restarted with backoff. A crash in the
messaging layer does not stop the API from serving the current dataset
snapshot.

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which takes a *slog.Logger; pass logging.NewSlogLogger() to
route them into the zerolog stream.
*/
package supervisor
