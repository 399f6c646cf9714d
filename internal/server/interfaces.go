// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

package server

// Server is the lifecycle contract of a transport server. [RunServer]
// blocks until shutdown is requested; [Shutdown] stops accepting new
// requests and drains in-flight ones.
type Server interface {
	RunServer()
	Shutdown()
}
