package screenings

import (
	"context"
	"time"

	"reelpass/internal/shared/constants"
	"reelpass/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	GetScreening(ctx context.Context, id uuid.UUID) (*ScreeningResponse, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID) (*ScreeningListResponse, error)
	ListUpcoming(ctx context.Context) (*ScreeningListResponse, error)
	CreateScreening(ctx context.Context, screening *Screening) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) GetScreening(ctx context.Context, id uuid.UUID) (*ScreeningResponse, error) {
	var resp ScreeningResponse

	err := s.cache.GetOrSet(ctx, constants.ScreeningDetailKey(id.String()), constants.TTL_SCREENING_DETAIL,
		func() (interface{}, error) {
			screening, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return ToScreeningResponse(screening), nil
		}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *service) ListByMovie(ctx context.Context, movieID uuid.UUID) (*ScreeningListResponse, error) {
	var resp ScreeningListResponse

	err := s.cache.GetOrSet(ctx, constants.ScreeningsByMovieKey(movieID.String()), constants.TTL_SCREENINGS_BY_MOVIE,
		func() (interface{}, error) {
			list, err := s.repo.GetByMovie(ctx, movieID, time.Now())
			if err != nil {
				return nil, err
			}
			return toListResponse(list), nil
		}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *service) ListUpcoming(ctx context.Context) (*ScreeningListResponse, error) {
	var resp ScreeningListResponse

	err := s.cache.GetOrSet(ctx, constants.UpcomingScreeningsKey(), constants.TTL_SCREENINGS_UPCOMING,
		func() (interface{}, error) {
			list, err := s.repo.GetUpcoming(ctx, time.Now())
			if err != nil {
				return nil, err
			}
			return toListResponse(list), nil
		}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *service) CreateScreening(ctx context.Context, screening *Screening) error {
	if err := s.repo.Create(ctx, screening); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, constants.ScreeningsByMovieKey(screening.MovieID.String()))
	_ = s.cache.Delete(ctx, constants.UpcomingScreeningsKey())
	return nil
}

func toListResponse(list []Screening) ScreeningListResponse {
	out := ScreeningListResponse{Screenings: make([]ScreeningResponse, 0, len(list)), Total: len(list)}
	for i := range list {
		out.Screenings = append(out.Screenings, ToScreeningResponse(&list[i]))
	}
	return out
}
