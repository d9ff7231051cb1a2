package screenings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrScreeningNotFound = errors.New("screening not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Screening, error)
	GetByMovie(ctx context.Context, movieID uuid.UUID, after time.Time) ([]Screening, error)
	GetUpcoming(ctx context.Context, after time.Time) ([]Screening, error)
	Create(ctx context.Context, screening *Screening) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Screening, error) {
	var screening Screening
	err := r.db.WithContext(ctx).Preload("Movie").Where("id = ?", id).First(&screening).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return &screening, nil
}

func (r *repository) GetByMovie(ctx context.Context, movieID uuid.UUID, after time.Time) ([]Screening, error) {
	var list []Screening
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND starts_at > ?", movieID, after).
		Order("starts_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) GetUpcoming(ctx context.Context, after time.Time) ([]Screening, error) {
	var list []Screening
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("starts_at > ?", after).
		Order("starts_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Create(ctx context.Context, screening *Screening) error {
	return r.db.WithContext(ctx).Create(screening).Error
}
