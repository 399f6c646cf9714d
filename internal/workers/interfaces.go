// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package workers runs the background jobs of the server, currently the
// in-process auto-archive sweep. The [Workers] aggregate starts each
// registered [Worker] and lets it manage its own goroutines.
package workers

// Worker is a background job that [Workers.Run] starts once. Run either
// blocks for the worker's lifetime or spawns goroutines internally and
// returns.
type Worker interface {
	Run()
}
