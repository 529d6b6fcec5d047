package shows

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShowNotFound = errors.New("show not found")

type Repository interface {
	Create(ctx context.Context, show *Show) error
	GetByID(ctx context.Context, id uuid.UUID) (*Show, error)
	GetByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*Show, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Show, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, show *Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &show, nil
}

// GetByIDForEvent fetches a show only if it belongs to the given event
func (r *repository) GetByIDForEvent(ctx context.Context, id, eventID uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", id, eventID).
		First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &show, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Show, error) {
	var result []Show
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("show_time ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Show{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShowNotFound
	}
	return nil
}
