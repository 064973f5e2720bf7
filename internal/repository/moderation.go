package repository

import (
	"context"

	"majlis/internal/models"

	"gorm.io/gorm"
)

// ModerationRepository persists and lists moderation audit records.
type ModerationRepository interface {
	Create(ctx context.Context, record *models.ModerationRecord) error
	ListByContentItem(ctx context.Context, contentItemID uint) ([]models.ModerationRecord, error)
	ListRecent(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new moderation repository.
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) Create(ctx context.Context, record *models.ModerationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *moderationRepository) ListByContentItem(ctx context.Context, contentItemID uint) ([]models.ModerationRecord, error) {
	var records []models.ModerationRecord
	err := r.db.WithContext(ctx).
		Where("content_item_id = ?", contentItemID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *moderationRepository) ListRecent(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error) {
	var records []models.ModerationRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}
