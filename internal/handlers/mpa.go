package handlers

import (
	"net/http"

	"github.com/filmgraph/backend/internal/models"
)

// MpaHandler serves the MPA rating reference enumeration.
type MpaHandler struct {
	Ratings RatingStore
}

// List handles GET /mpa.
func (h MpaHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Ratings == nil {
		respondError(ctx, w, http.StatusInternalServerError, "mpa service unavailable")
		return
	}

	ratings, err := h.Ratings.FindAll(ctx)
	if err != nil {
		respondStoreError(ctx, w, err, "mpa rating")
		return
	}
	if ratings == nil {
		ratings = []models.MpaRating{}
	}

	respondJSON(ctx, w, http.StatusOK, ratings)
}

// Get handles GET /mpa/{id}.
func (h MpaHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Ratings == nil {
		respondError(ctx, w, http.StatusInternalServerError, "mpa service unavailable")
		return
	}

	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	rating, err := h.Ratings.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "mpa rating")
		return
	}

	respondJSON(ctx, w, http.StatusOK, rating)
}
