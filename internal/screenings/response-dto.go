package screenings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ScreeningResponse struct {
	ID         uuid.UUID       `json:"id"`
	MovieID    uuid.UUID       `json:"movie_id"`
	MovieTitle string          `json:"movie_title,omitempty"`
	Hall       string          `json:"hall"`
	StartsAt   time.Time       `json:"starts_at"`
	Price      decimal.Decimal `json:"price"`
}

type ScreeningListResponse struct {
	Screenings []ScreeningResponse `json:"screenings"`
	Total      int                 `json:"total"`
}

func ToScreeningResponse(s *Screening) ScreeningResponse {
	resp := ScreeningResponse{
		ID:       s.ID,
		MovieID:  s.MovieID,
		Hall:     s.Hall,
		StartsAt: s.StartsAt,
		Price:    s.Price,
	}
	if s.Movie != nil {
		resp.MovieTitle = s.Movie.Title
	}
	return resp
}
