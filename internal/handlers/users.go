package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/filmgraph/backend/internal/logging"
	"github.com/filmgraph/backend/internal/models"
)

// UserHandler implements the user CRUD and friendship endpoints.
type UserHandler struct {
	Users   UserStore
	Graph   FriendshipGraph
	Limiter RateLimiter
}

// Create handles POST /users.
func (h UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil {
		logger.Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "user service unavailable")
		return
	}

	if !allowRequest(h.Limiter, r, "users:create") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many requests")
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		logger.Warn("invalid user payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateUser(user); err != nil {
		logger.Warn("user validation failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Users.Create(ctx, user)
	if err != nil {
		logger.Error("failed to create user", "error", err)
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondJSON(ctx, w, http.StatusCreated, created)
}

// Update handles PUT /users.
func (h UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil {
		logger.Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "user service unavailable")
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		logger.Warn("invalid user payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateUser(user); err != nil {
		logger.Warn("user validation failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Users.Update(ctx, user)
	if err != nil {
		logger.Warn("failed to update user", "userId", user.ID, "error", err)
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated)
}

// List handles GET /users.
func (h UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Users == nil {
		respondError(ctx, w, http.StatusInternalServerError, "user service unavailable")
		return
	}

	users, err := h.Users.FindAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to list users", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	respondJSON(ctx, w, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Users == nil {
		respondError(ctx, w, http.StatusInternalServerError, "user service unavailable")
		return
	}

	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	user, err := h.Users.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondJSON(ctx, w, http.StatusOK, user)
}

// AddFriend handles PUT /users/{id}/friends/{friendId}.
func (h UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Graph == nil {
		logger.Error("friendship graph unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "friendship service unavailable")
		return
	}

	if !allowRequest(h.Limiter, r, "users:friends") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many requests")
		return
	}

	userID, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(ctx, w, r, "friendId")
	if !ok {
		return
	}

	if err := h.Graph.AddFriend(ctx, userID, friendID); err != nil {
		logger.Warn("failed to add friend", "userId", userID, "friendId", friendID, "error", err)
		respondStoreError(ctx, w, err, "user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFriend handles DELETE /users/{id}/friends/{friendId}.
func (h UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Graph == nil {
		logger.Error("friendship graph unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "friendship service unavailable")
		return
	}

	userID, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(ctx, w, r, "friendId")
	if !ok {
		return
	}

	if err := h.Graph.RemoveFriend(ctx, userID, friendID); err != nil {
		logger.Warn("failed to remove friend", "userId", userID, "friendId", friendID, "error", err)
		respondStoreError(ctx, w, err, "user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Friends handles GET /users/{id}/friends.
func (h UserHandler) Friends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Graph == nil {
		respondError(ctx, w, http.StatusInternalServerError, "friendship service unavailable")
		return
	}

	userID, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	friends, err := h.Graph.Friends(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondJSON(ctx, w, http.StatusOK, friends)
}

// CommonFriends handles GET /users/{id}/friends/common/{otherId}.
func (h UserHandler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Graph == nil {
		respondError(ctx, w, http.StatusInternalServerError, "friendship service unavailable")
		return
	}

	userID, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(ctx, w, r, "otherId")
	if !ok {
		return
	}

	common, err := h.Graph.CommonFriends(ctx, userID, otherID)
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondJSON(ctx, w, http.StatusOK, common)
}
