package movies

import (
	"context"

	"reelpass/internal/shared/constants"
	"reelpass/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	ListMovies(ctx context.Context) (*MovieListResponse, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	CreateMovie(ctx context.Context, movie *Movie) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) ListMovies(ctx context.Context) (*MovieListResponse, error) {
	var resp MovieListResponse

	err := s.cache.GetOrSet(ctx, constants.MoviesListKey(), constants.TTL_MOVIES_LIST,
		func() (interface{}, error) {
			list, err := s.repo.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			out := MovieListResponse{Movies: make([]MovieResponse, 0, len(list)), Total: len(list)}
			for i := range list {
				out.Movies = append(out.Movies, ToMovieResponse(&list[i]))
			}
			return out, nil
		}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *service) GetMovie(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	var resp MovieResponse

	err := s.cache.GetOrSet(ctx, constants.MovieDetailKey(id.String()), constants.TTL_MOVIE_DETAIL,
		func() (interface{}, error) {
			movie, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return ToMovieResponse(movie), nil
		}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *service) CreateMovie(ctx context.Context, movie *Movie) error {
	if err := s.repo.Create(ctx, movie); err != nil {
		return err
	}
	// Invalidate list caches so the new title shows up
	_ = s.cache.Delete(ctx, constants.MoviesListKey())
	return nil
}
