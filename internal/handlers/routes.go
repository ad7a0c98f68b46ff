package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	users := UserHandler{Users: deps.Users, Graph: deps.Graph, Limiter: deps.Limiter}
	films := FilmHandler{Films: deps.Films, Likes: deps.Likes, Limiter: deps.Limiter}
	genres := GenreHandler{Genres: deps.Genres}
	mpa := MpaHandler{Ratings: deps.Ratings}

	mux.HandleFunc("GET /healthz", health.Handle)

	mux.HandleFunc("GET /users", users.List)
	mux.HandleFunc("POST /users", users.Create)
	mux.HandleFunc("PUT /users", users.Update)
	mux.HandleFunc("GET /users/{id}", users.Get)
	mux.HandleFunc("GET /users/{id}/friends", users.Friends)
	mux.HandleFunc("GET /users/{id}/friends/common/{otherId}", users.CommonFriends)
	mux.HandleFunc("PUT /users/{id}/friends/{friendId}", users.AddFriend)
	mux.HandleFunc("DELETE /users/{id}/friends/{friendId}", users.RemoveFriend)

	mux.HandleFunc("GET /films", films.List)
	mux.HandleFunc("POST /films", films.Create)
	mux.HandleFunc("PUT /films", films.Update)
	mux.HandleFunc("GET /films/popular", films.Popular)
	mux.HandleFunc("GET /films/{id}", films.Get)
	mux.HandleFunc("PUT /films/{id}/like/{userId}", films.Like)
	mux.HandleFunc("DELETE /films/{id}/like/{userId}", films.Unlike)

	mux.HandleFunc("GET /genres", genres.List)
	mux.HandleFunc("GET /genres/{id}", genres.Get)

	mux.HandleFunc("GET /mpa", mpa.List)
	mux.HandleFunc("GET /mpa/{id}", mpa.Get)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users   UserStore
	Films   FilmStore
	Graph   FriendshipGraph
	Likes   LikeRanker
	Genres  GenreStore
	Ratings RatingStore
	Limiter RateLimiter
}
