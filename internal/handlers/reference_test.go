package handlers_test

import (
	"net/http"
	"testing"

	"github.com/filmgraph/backend/internal/models"
)

func TestGenreEndpoints(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/genres", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	genres := decodeBody[[]models.Genre](t, rec)
	if len(genres) != 6 || genres[0].Name != "Comedy" || genres[5].Name != "Action" {
		t.Fatalf("unexpected genre enumeration: %+v", genres)
	}

	rec = doJSON(t, mux, http.MethodGet, "/genres/3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	genre := decodeBody[models.Genre](t, rec)
	if genre.Name != "Cartoon" {
		t.Fatalf("expected Cartoon, got %q", genre.Name)
	}

	rec = doJSON(t, mux, http.MethodGet, "/genres/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown genre, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodGet, "/genres/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestMpaEndpoints(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/mpa", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	ratings := decodeBody[[]models.MpaRating](t, rec)
	if len(ratings) != 5 || ratings[0].Name != "G" || ratings[4].Name != "NC-17" {
		t.Fatalf("unexpected rating enumeration: %+v", ratings)
	}

	rec = doJSON(t, mux, http.MethodGet, "/mpa/5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rating := decodeBody[models.MpaRating](t, rec)
	if rating.Name != "NC-17" {
		t.Fatalf("expected NC-17, got %q", rating.Name)
	}

	rec = doJSON(t, mux, http.MethodGet, "/mpa/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown rating, got %d", rec.Code)
	}
}
