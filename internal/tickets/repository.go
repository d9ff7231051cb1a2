package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrSeatTaken      = errors.New("seat already taken")
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetOccupiedSeats(ctx context.Context, screeningID uuid.UUID) ([]string, error)
	GetByEmailUpcoming(ctx context.Context, email string, after time.Time) ([]Ticket, error)
	GetByUserUpcoming(ctx context.Context, userID uuid.UUID, after time.Time) ([]Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the ticket row. A unique violation on
// (screening_id, seat) means another booking won the seat; thanks to
// TranslateError it surfaces as gorm.ErrDuplicatedKey and is mapped
// to ErrSeatTaken.
func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	err := r.db.WithContext(ctx).Create(ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Preload("Screening").
		Preload("Screening.Movie").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetOccupiedSeats(ctx context.Context, screeningID uuid.UUID) ([]string, error) {
	var seats []string
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("screening_id = ?", screeningID).
		Pluck("seat", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *repository) GetByEmailUpcoming(ctx context.Context, email string, after time.Time) ([]Ticket, error) {
	var list []Ticket
	err := r.db.WithContext(ctx).
		Preload("Screening").
		Preload("Screening.Movie").
		Joins("JOIN screenings ON screenings.id = tickets.screening_id").
		Where("LOWER(tickets.email) = LOWER(?) AND screenings.starts_at > ?", email, after).
		Order("screenings.starts_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) GetByUserUpcoming(ctx context.Context, userID uuid.UUID, after time.Time) ([]Ticket, error) {
	var list []Ticket
	err := r.db.WithContext(ctx).
		Preload("Screening").
		Preload("Screening.Movie").
		Joins("JOIN screenings ON screenings.id = tickets.screening_id").
		Where("tickets.user_id = ? AND screenings.starts_at > ?", userID, after).
		Order("screenings.starts_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Ticket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}
