// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the paper store over HTTP: the search endpoint the
// web frontend calls, paper lookup, and a health check.
package server

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/openimpact/internal/store"
)

// Env carries the shared dependencies handlers and middleware need.
type Env struct {
	Store  *store.Store
	Cache  *Cache // nil when caching is disabled
	Logger *zap.SugaredLogger
}
