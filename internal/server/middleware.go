// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/justinas/alice"
)

const requestIDHeader = "X-Request-Id"

// Recovery converts handler panics into HTTP 500 responses.
func Recovery(env *Env) alice.Constructor {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					env.Logger.Errorw("recovered from panic",
						"path", r.URL.Path, "panic", rec)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}

// RequestID stamps each response with a request identifier, reusing the
// caller's when one is supplied.
func RequestID() alice.Constructor {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			h.ServeHTTP(w, r)
		})
	}
}
