// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/openimpact/internal/secrets"
	"github.com/mesh-intelligence/openimpact/internal/server"
	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend HTTP API",
	Long: `Serve starts the backend HTTP service: GET /search for the frontend
search trigger, GET /papers/{id} for paper lookup, and GET /healthcheck.
Search responses can be cached in redis when --cache-addr is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8000, "listen port")
	serveCmd.Flags().String("data-dir", "data", "directory holding the paper database")
	serveCmd.Flags().Int("max-results", 20, "maximum number of search results")
	serveCmd.Flags().String("cache-addr", "", "redis address for the search cache (empty disables caching)")
	serveCmd.Flags().Duration("cache-ttl", 5*time.Minute, "search cache entry lifetime")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Infof("Starting openimpact version: %s", version)

	st, err := store.Open(types.StoreConfig{
		DataDir:    stringSetting(cmd, "data-dir", "store.data_dir"),
		MaxResults: intSetting(cmd, "max-results", "store.max_results"),
	})
	if err != nil {
		return err
	}
	defer st.Close()

	env := &server.Env{Store: st, Logger: logger}

	if addr := stringSetting(cmd, "cache-addr", "server.cache_addr"); addr != "" {
		ttl := durationSetting(cmd, "cache-ttl", "server.cache_ttl")
		env.Cache = server.NewCache(addr, secrets.First(loadedSecrets, "redis-password"), ttl)
		defer env.Cache.Close()
		logger.Infof("Search cache enabled: %s (TTL %s)", addr, ttl)
	}

	return server.Run(env, types.ServerConfig{
		Port: intSetting(cmd, "port", "server.port"),
	})
}
