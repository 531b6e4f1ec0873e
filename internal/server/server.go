// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"

	"github.com/mesh-intelligence/openimpact/pkg/types"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

// Router builds the HTTP routing table for the backend service.
func Router(env *Env) *mux.Router {
	chain := alice.New(
		Recovery(env),
		RequestID(),
	)
	logOutput := log.Default().Writer()
	logHandler := gorillaHandlers.LoggingHandler

	r := mux.NewRouter()
	r.Handle("/", chain.Then(Root())).Methods(http.MethodGet)
	r.Handle("/search", logHandler(logOutput, chain.Then(Search(env)))).Methods(http.MethodGet)
	r.Handle("/papers/{id}", logHandler(logOutput, chain.Then(Paper(env)))).Methods(http.MethodGet)
	r.Handle("/healthcheck", Healthcheck(env)).Methods(http.MethodGet)
	return r
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func Run(env *Env, cfg types.ServerConfig) error {
	port := cfg.Port
	if port == 0 {
		port = 8000
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           Router(env),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		env.Logger.Infof("HTTP server starting on port: %d", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to start HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	env.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}
