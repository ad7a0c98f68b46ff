package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/filmgraph/backend/internal/films"
	"github.com/filmgraph/backend/internal/logging"
	"github.com/filmgraph/backend/internal/models"
)

// FilmHandler implements the film CRUD, like and popularity endpoints.
type FilmHandler struct {
	Films   FilmStore
	Likes   LikeRanker
	Limiter RateLimiter
}

// Create handles POST /films.
func (h FilmHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Films == nil {
		logger.Error("film store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "film service unavailable")
		return
	}

	if !allowRequest(h.Limiter, r, "films:create") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var film models.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		logger.Warn("invalid film payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateFilm(film); err != nil {
		logger.Warn("film validation failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Films.Create(ctx, film)
	if err != nil {
		logger.Warn("failed to create film", "error", err)
		respondStoreError(ctx, w, err, "reference")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, created)
}

// Update handles PUT /films.
func (h FilmHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Films == nil {
		logger.Error("film store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "film service unavailable")
		return
	}

	var film models.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		logger.Warn("invalid film payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateFilm(film); err != nil {
		logger.Warn("film validation failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Films.Update(ctx, film)
	if err != nil {
		logger.Warn("failed to update film", "filmId", film.ID, "error", err)
		respondStoreError(ctx, w, err, "film")
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated)
}

// List handles GET /films.
func (h FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Films == nil {
		respondError(ctx, w, http.StatusInternalServerError, "film service unavailable")
		return
	}

	all, err := h.Films.FindAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to list films", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to list films")
		return
	}
	if all == nil {
		all = []models.Film{}
	}

	respondJSON(ctx, w, http.StatusOK, all)
}

// Get handles GET /films/{id}.
func (h FilmHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Films == nil {
		respondError(ctx, w, http.StatusInternalServerError, "film service unavailable")
		return
	}

	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	film, err := h.Films.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "film")
		return
	}

	respondJSON(ctx, w, http.StatusOK, film)
}

// Like handles PUT /films/{id}/like/{userId}.
func (h FilmHandler) Like(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Likes == nil {
		logger.Error("like service unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "like service unavailable")
		return
	}

	filmID, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(ctx, w, r, "userId")
	if !ok {
		return
	}

	if err := h.Likes.Like(ctx, filmID, userID); err != nil {
		logger.Warn("failed to record like", "filmId", filmID, "userId", userID, "error", err)
		respondStoreError(ctx, w, err, "film or user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unlike handles DELETE /films/{id}/like/{userId}.
func (h FilmHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Likes == nil {
		logger.Error("like service unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "like service unavailable")
		return
	}

	filmID, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(ctx, w, r, "userId")
	if !ok {
		return
	}

	if err := h.Likes.Dislike(ctx, filmID, userID); err != nil {
		logger.Warn("failed to remove like", "filmId", filmID, "userId", userID, "error", err)
		respondStoreError(ctx, w, err, "film or user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Popular handles GET /films/popular?count=N.
func (h FilmHandler) Popular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Likes == nil {
		respondError(ctx, w, http.StatusInternalServerError, "like service unavailable")
		return
	}

	count := films.DefaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, w, http.StatusBadRequest, "invalid count")
			return
		}
		count = parsed
	}

	popular, err := h.Likes.MostPopular(ctx, count)
	if err != nil {
		logging.FromContext(ctx).Error("failed to rank films", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to rank films")
		return
	}

	respondJSON(ctx, w, http.StatusOK, popular)
}
