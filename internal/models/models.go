package models

import "time"

// User represents a registered account in the FilmGraph catalog.
type User struct {
	ID       int       `json:"id"`
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
}

// Film represents a catalogued film and its reference attributes.
type Film struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate time.Time  `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Mpa         *MpaRating `json:"mpa,omitempty"`
	Genres      []Genre    `json:"genres"`
}

// Genre is a pre-seeded reference entity looked up by id.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MpaRating is the MPA age rating reference entity.
type MpaRating struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Friendship is a directed edge from one user to another. A confirmed
// edge exists only while the reverse edge is also present.
type Friendship struct {
	UserID   int    `json:"userId"`
	FriendID int    `json:"friendId"`
	Status   string `json:"status"`
}

const (
	FriendshipRequested = "requested"
	FriendshipConfirmed = "confirmed"
)
