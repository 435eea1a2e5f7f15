package repository

import (
	"context"
	"time"

	"github.com/reddaiahsirigireddy/shortt/internal/app/model"
	"gorm.io/gorm"
)

// ClickEventRepository defines the data access contract for click events.
type ClickEventRepository interface {
	Create(ctx context.Context, event *model.ClickEvent) error
	CountBySlug(ctx context.Context, slug string) (int64, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

type clickEventRepository struct {
	db *gorm.DB
}

// NewClickEventRepository returns a GORM-backed ClickEventRepository.
func NewClickEventRepository(db *gorm.DB) ClickEventRepository {
	return &clickEventRepository{db: db}
}

func (r *clickEventRepository) Create(ctx context.Context, event *model.ClickEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *clickEventRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClickEvent{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count, err
}

func (r *clickEventRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", before).
		Delete(&model.ClickEvent{})
	return result.RowsAffected, result.Error
}
