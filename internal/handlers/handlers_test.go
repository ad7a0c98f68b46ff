package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filmgraph/backend/internal/films"
	"github.com/filmgraph/backend/internal/handlers"
	"github.com/filmgraph/backend/internal/models"
	"github.com/filmgraph/backend/internal/repositories"
	"github.com/filmgraph/backend/internal/social"
)

// newTestMux wires the full route table over in-memory stores so handler tests
// exercise routing, path parameters and status mapping together.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	genreRepo := repositories.NewMemoryGenreRepository()
	ratingRepo := repositories.NewMemoryRatingRepository()
	users := repositories.NewMemoryUserRepository()
	filmRepo := repositories.NewMemoryFilmRepository(genreRepo, ratingRepo)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Dependencies{
		Users:   users,
		Films:   filmRepo,
		Graph:   social.NewGraph(users, repositories.NewMemoryFriendshipRepository()),
		Likes:   films.NewService(filmRepo, users, repositories.NewMemoryLikeRepository()),
		Genres:  genreRepo,
		Ratings: ratingRepo,
	})
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}

func createUser(t *testing.T, mux *http.ServeMux, login string) models.User {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/users", map[string]any{
		"email":    login + "@example.com",
		"login":    login,
		"birthday": "1990-01-01T00:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user %s: expected 201, got %d (%s)", login, rec.Code, rec.Body.String())
	}
	return decodeBody[models.User](t, rec)
}

func createFilm(t *testing.T, mux *http.ServeMux, name string) models.Film {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/films", map[string]any{
		"name":        name,
		"releaseDate": "2010-05-01T00:00:00Z",
		"duration":    100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create film %s: expected 201, got %d (%s)", name, rec.Code, rec.Body.String())
	}
	return decodeBody[models.Film](t, rec)
}
