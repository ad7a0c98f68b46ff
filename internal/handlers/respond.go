package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/filmgraph/backend/internal/logging"
	"github.com/filmgraph/backend/internal/repositories"
	"github.com/filmgraph/backend/internal/social"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, map[string]string{"error": message})
}

// respondStoreError maps domain failures onto HTTP statuses: missing entities
// become 404, rejected relation requests 400, anything else 500.
func respondStoreError(ctx context.Context, w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		respondError(ctx, w, http.StatusNotFound, message+" not found")
	case errors.Is(err, social.ErrSelfFriendship):
		respondError(ctx, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrConflict):
		respondError(ctx, w, http.StatusConflict, message+" already exists")
	default:
		logging.FromContext(ctx).Error("request processing failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "internal error")
	}
}

// pathID extracts a positive integer path parameter, responding 400 itself on
// failure.
func pathID(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		respondError(ctx, w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
