// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"
	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

// SearchResponse is the payload served by GET /search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Results []types.Paper `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Root greets API callers, mirroring the original backend's welcome route.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to OpenImpact API"})
	}
}

// Search serves GET /search?query=. The empty query is valid and returns
// the most recent papers. Responses are cached per query when a cache is
// configured; cache failures degrade to a direct store query.
func Search(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")

		if env.Cache != nil {
			if body, err := env.Cache.Get(r.Context(), searchKey(query)); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Write(body)
				return
			}
		}

		papers, err := env.Store.Search(r.Context(), query, 0)
		if err != nil {
			env.Logger.Errorw("search failed", "query", query, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "search failed"})
			return
		}
		if papers == nil {
			papers = []types.Paper{}
		}

		resp := SearchResponse{Query: query, Count: len(papers), Results: papers}
		body, err := json.Marshal(resp)
		if err != nil {
			env.Logger.Errorw("encoding search response", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "search failed"})
			return
		}

		if env.Cache != nil {
			if err := env.Cache.Set(r.Context(), searchKey(query), body); err != nil {
				env.Logger.Warnw("caching search response", "query", query, "error", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

// Paper serves GET /papers/{id}.
func Paper(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		paper, err := env.Store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "paper not found"})
			return
		}
		if err != nil {
			env.Logger.Errorw("paper lookup failed", "id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "paper lookup failed"})
			return
		}

		writeJSON(w, http.StatusOK, paper)
	}
}

// Healthcheck reports database and cache connectivity.
func Healthcheck(env *Env) http.Handler {
	checkers := []healthcheck.Option{
		healthcheck.WithTimeout(5 * time.Second),
		healthcheck.WithChecker("database", healthcheck.CheckerFunc(
			func(ctx context.Context) error {
				return env.Store.Ping(ctx)
			},
		)),
	}
	if env.Cache != nil {
		checkers = append(checkers, healthcheck.WithChecker("cache", healthcheck.CheckerFunc(
			func(ctx context.Context) error {
				return env.Cache.Ping(ctx)
			},
		)))
	}
	return healthcheck.Handler(checkers...)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
