// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const CHECK_TIMEOUT = time.Second * 5

// Check reports an error when a dependency of the filler is unavailable.
type Check func(ctx context.Context) error

// Handler returns ok if every check passes and 503 with the failing check otherwise.
func Handler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), CHECK_TIMEOUT)
		defer cancel()

		for name, check := range checks {
			err := check(ctx)
			if err != nil {
				log.Warn().Str("check", name).Msgf("Health check failed: %s", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(fmt.Sprintf("%s: %s", name, err)))
				return
			}
		}

		_, _ = w.Write([]byte("ok"))
	}
}

// StartHealthEndpoint starts /health endpoint on provided port that returns ok on invocation
func StartHealthEndpoint(port uint16, checks map[string]Check) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", Handler(checks))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Info().Msgf("started /health endpoint on port %d", port)
	err := srv.ListenAndServe()
	if err != nil {
		log.Err(err).Msgf("Failed starting health server")
		return
	}
}
