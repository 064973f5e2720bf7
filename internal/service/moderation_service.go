package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"majlis/internal/models"
	"majlis/internal/notifications"
	"majlis/internal/observability"
	"majlis/internal/repository"

	"gorm.io/gorm"
)

// ModerationService applies admin edits and deletions to content items. Every
// mutation commits atomically with its audit record; the owner notification
// rides behind the commit and never blocks or rolls it back.
type ModerationService struct {
	db       *gorm.DB
	notifier *notifications.Notifier

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

type ModerateEditInput struct {
	ContentID uint
	NewBody   string
	Reason    string
	ActorID   uint
}

type ModerateDeleteInput struct {
	ContentID uint
	Reason    string
	ActorID   uint
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB, notifier *notifications.Notifier) *ModerationService {
	return &ModerationService{
		db:       db,
		notifier: notifier,
		locks:    map[uint]*sync.Mutex{},
	}
}

// lockFor returns the per-item mutex, creating it on first use. Racing
// moderation actions on the same item serialize here, so each transaction
// sees the previous one's committed state.
func (s *ModerationService) lockFor(contentID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[contentID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[contentID] = lock
	}
	return lock
}

// dropLock removes a deleted item's mutex so the map stays bounded by live
// items. A goroutine already waiting on the old mutex still serializes; it
// just finds the row gone and gets NotFound.
func (s *ModerationService) dropLock(contentID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, contentID)
}

func validateReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", models.NewValidationError("A moderation reason is required")
	}
	return trimmed, nil
}

// Edit replaces a content item's body. Only body and updated_at change; type,
// author, scoping, and privacy survive the edit untouched.
func (s *ModerationService) Edit(ctx context.Context, in ModerateEditInput) (*models.ContentItem, error) {
	reason, err := validateReason(in.Reason)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.NewBody) == "" {
		return nil, models.NewValidationError("Body cannot be empty")
	}

	lock := s.lockFor(in.ContentID)
	lock.Lock()
	defer lock.Unlock()

	var updated *models.ContentItem
	var prior models.ContentItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prior, in.ContentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Content item", in.ContentID)
			}
			return err
		}

		repo := repository.NewContentRepository(tx)
		item, err := repo.ApplyEdit(ctx, in.ContentID, in.NewBody)
		if err != nil {
			return err
		}
		updated = item

		return tx.Create(&models.ModerationRecord{
			ContentItemID: in.ContentID,
			ActorID:       in.ActorID,
			Action:        models.ModerationActionEdit,
			Reason:        reason,
			PriorBody:     prior.Body,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	observability.ModerationActions.WithLabelValues(models.ModerationActionEdit).Inc()
	s.notifier.NotifyOwnerAsync(prior.UserID, notifications.ModerationNotice{
		ContentItemID: in.ContentID,
		ContentType:   prior.Type,
		Action:        models.ModerationActionEdit,
		Reason:        reason,
		CampID:        prior.CampID,
		CohortNumber:  prior.CohortNumber,
	})

	return updated, nil
}

// Delete hard-removes a content item. The audit record outlives the row; a
// second delete of the same id fails with NotFound and writes nothing.
func (s *ModerationService) Delete(ctx context.Context, in ModerateDeleteInput) error {
	reason, err := validateReason(in.Reason)
	if err != nil {
		return err
	}

	lock := s.lockFor(in.ContentID)
	lock.Lock()
	defer lock.Unlock()

	var prior models.ContentItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prior, in.ContentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Content item", in.ContentID)
			}
			return err
		}

		repo := repository.NewContentRepository(tx)
		if err := repo.ApplyDelete(ctx, in.ContentID); err != nil {
			return err
		}

		return tx.Create(&models.ModerationRecord{
			ContentItemID: in.ContentID,
			ActorID:       in.ActorID,
			Action:        models.ModerationActionDelete,
			Reason:        reason,
			PriorBody:     prior.Body,
		}).Error
	})
	if err != nil {
		return err
	}
	s.dropLock(in.ContentID)

	observability.ModerationActions.WithLabelValues(models.ModerationActionDelete).Inc()
	s.notifier.NotifyOwnerAsync(prior.UserID, notifications.ModerationNotice{
		ContentItemID: in.ContentID,
		ContentType:   prior.Type,
		Action:        models.ModerationActionDelete,
		Reason:        reason,
		CampID:        prior.CampID,
		CohortNumber:  prior.CohortNumber,
	})

	return nil
}

// AuditTrail lists moderation records for one content item, newest first.
func (s *ModerationService) AuditTrail(ctx context.Context, contentItemID uint) ([]models.ModerationRecord, error) {
	return repository.NewModerationRepository(s.db).ListByContentItem(ctx, contentItemID)
}

// RecentActions lists recent moderation records across all content.
func (s *ModerationService) RecentActions(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error) {
	if limit < 1 {
		limit = 50
	}
	return repository.NewModerationRepository(s.db).ListRecent(ctx, limit, offset)
}
