package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, log *zap.Logger, status int, userMsg string, err error) {
	if err != nil {
		if status >= http.StatusInternalServerError {
			log.Error(userMsg, zap.Int("status", status), zap.Error(err))
		} else {
			log.Debug(userMsg, zap.Int("status", status), zap.Error(err))
		}
	}
	respondJSON(w, log, status, errorResponse{Error: userMsg})
}

func respondJSON(w http.ResponseWriter, log *zap.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("failed to write response", zap.Error(err))
	}
}

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
