package repository

import (
	"context"
	"errors"
	"time"

	"majlis/internal/cache"
	"majlis/internal/models"

	"gorm.io/gorm"
)

// FetchOptions narrows a cohort fetch. Day is an exact match on the camp day;
// Limit is a result-size hint for pagination push-down (0 means unbounded).
type FetchOptions struct {
	ViewerID uint
	Day      *int
	Limit    int
}

// ContentRepository defines the interface for study hall content data operations.
// Fetches are always scoped to exactly one cohort of one camp; mixing cohorts
// in a result set is a correctness bug, not a feature.
type ContentRepository interface {
	FetchCohort(ctx context.Context, campID uint, cohortNumber int, opts FetchOptions) ([]*models.ContentItem, error)
	GetByID(ctx context.Context, id, viewerID uint) (*models.ContentItem, error)
	SavedContentIDs(ctx context.Context, viewerID, campID uint, cohortNumber int) (map[uint]struct{}, error)
	// ApplyEdit and ApplyDelete are one-shot state transitions: acting on a
	// missing (or already-deleted) id fails with NotFound, never silently
	// succeeds.
	ApplyEdit(ctx context.Context, id uint, newBody string) (*models.ContentItem, error)
	ApplyDelete(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository. Pass a transaction
// handle to get a repository bound to that transaction.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// applyContentDetails adds subqueries to fetch engagement counts and the
// viewer's saved status in a single query.
func (r *contentRepository) applyContentDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "content_items.*, " +
		"(SELECT COUNT(*) FROM content_upvotes WHERE content_upvotes.content_item_id = content_items.id) as upvote_count, " +
		"(SELECT COUNT(*) FROM content_saves WHERE content_saves.content_item_id = content_items.id) as save_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM content_saves WHERE content_saves.content_item_id = content_items.id AND content_saves.user_id = ?) as saved", viewerID)
	}

	return db.Select(selectQuery + ", 0 as saved")
}

func (r *contentRepository) FetchCohort(ctx context.Context, campID uint, cohortNumber int, opts FetchOptions) ([]*models.ContentItem, error) {
	// A fetch against a nonexistent camp is NotFound, not an empty feed.
	var camp models.Camp
	if err := r.db.WithContext(ctx).Select("id").First(&camp, campID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Camp", campID)
		}
		return nil, err
	}

	query := r.applyContentDetails(r.db.WithContext(ctx), opts.ViewerID).
		Preload("Author").
		Where("camp_id = ? AND cohort_number = ?", campID, cohortNumber)
	if opts.Day != nil {
		query = query.Where("day_number = ?", *opts.Day)
	}
	query = query.Order("created_at DESC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var items []*models.ContentItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.ContentItem, error) {
	var item models.ContentItem

	var err error
	if viewerID == 0 {
		err = cache.Aside(ctx, cache.ContentKey(id), &item, cache.ContentTTL, func() error {
			return r.applyContentDetails(r.db.WithContext(ctx), 0).
				Preload("Author").
				First(&item, id).Error
		})
	} else {
		err = r.applyContentDetails(r.db.WithContext(ctx), viewerID).
			Preload("Author").
			First(&item, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Content item", id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) SavedContentIDs(ctx context.Context, viewerID, campID uint, cohortNumber int) (map[uint]struct{}, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.ContentSave{}).
		Joins("JOIN content_items ON content_items.id = content_saves.content_item_id").
		Where("content_saves.user_id = ? AND content_items.camp_id = ? AND content_items.cohort_number = ?",
			viewerID, campID, cohortNumber).
		Pluck("content_saves.content_item_id", &ids).Error
	if err != nil {
		return nil, err
	}

	saved := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		saved[id] = struct{}{}
	}
	return saved, nil
}

func (r *contentRepository) ApplyEdit(ctx context.Context, id uint, newBody string) (*models.ContentItem, error) {
	// Only body and updated_at change; type, author, scoping, and privacy are
	// untouchable through this path.
	res := r.db.WithContext(ctx).
		Model(&models.ContentItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"body":       newBody,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Content item", id)
	}

	cache.InvalidateContent(ctx, id)

	var item models.ContentItem
	if err := r.applyContentDetails(r.db.WithContext(ctx), 0).
		Preload("Author").
		First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) ApplyDelete(ctx context.Context, id uint) error {
	// Hard delete. The second delete of the same id finds no row and must
	// fail: callers treat delete as a one-shot state transition.
	res := r.db.WithContext(ctx).Delete(&models.ContentItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Content item", id)
	}

	cache.InvalidateContent(ctx, id)
	return nil
}
