package movies

import (
	"time"

	"github.com/google/uuid"
)

type MovieResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	DurationMin int       `json:"duration_min"`
	Rating      string    `json:"rating"`
	PosterURL   string    `json:"poster_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
	Total  int             `json:"total"`
}

func ToMovieResponse(m *Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		DurationMin: m.DurationMin,
		Rating:      m.Rating,
		PosterURL:   m.PosterURL,
		CreatedAt:   m.CreatedAt,
	}
}
