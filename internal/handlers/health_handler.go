package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger checks a backing store
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports whether the database answers
func Health(db Pinger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondWithError(w, log, http.StatusServiceUnavailable, "database unavailable", err)
			return
		}
		respondJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	}
}
