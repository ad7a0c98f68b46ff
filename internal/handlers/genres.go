package handlers

import (
	"net/http"

	"github.com/filmgraph/backend/internal/models"
)

// GenreHandler serves the genre reference enumeration.
type GenreHandler struct {
	Genres GenreStore
}

// List handles GET /genres.
func (h GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Genres == nil {
		respondError(ctx, w, http.StatusInternalServerError, "genre service unavailable")
		return
	}

	genres, err := h.Genres.FindAll(ctx)
	if err != nil {
		respondStoreError(ctx, w, err, "genre")
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}

	respondJSON(ctx, w, http.StatusOK, genres)
}

// Get handles GET /genres/{id}.
func (h GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Genres == nil {
		respondError(ctx, w, http.StatusInternalServerError, "genre service unavailable")
		return
	}

	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	genre, err := h.Genres.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "genre")
		return
	}

	respondJSON(ctx, w, http.StatusOK, genre)
}
