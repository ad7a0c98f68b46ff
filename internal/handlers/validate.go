package handlers

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/filmgraph/backend/internal/models"
)

const maxDescriptionLength = 200

// earliestReleaseDate is the date of the first public film screening; films
// cannot predate it.
var earliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

func validateUser(user models.User) error {
	if strings.TrimSpace(user.Email) == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return errors.New("invalid email address")
	}
	if user.Login == "" {
		return errors.New("login is required")
	}
	if strings.ContainsFunc(user.Login, unicode.IsSpace) {
		return errors.New("login must not contain whitespace")
	}
	if user.Birthday.After(time.Now()) {
		return errors.New("birthday must not be in the future")
	}
	return nil
}

func validateFilm(film models.Film) error {
	if strings.TrimSpace(film.Name) == "" {
		return errors.New("name is required")
	}
	if len([]rune(film.Description)) > maxDescriptionLength {
		return errors.New("description must be at most 200 characters")
	}
	if film.ReleaseDate.Before(earliestReleaseDate) {
		return errors.New("release date must not be before 1895-12-28")
	}
	if film.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}
