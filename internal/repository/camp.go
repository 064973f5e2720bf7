// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"majlis/internal/cache"
	"majlis/internal/models"

	"gorm.io/gorm"
)

// CampRepository defines the interface for camp and cohort-scope data operations.
type CampRepository interface {
	GetByID(ctx context.Context, campID uint) (*models.Camp, error)
	// CohortRole returns the viewer's role within (camp, cohort) and whether
	// they are a member at all.
	CohortRole(ctx context.Context, userID, campID uint, cohortNumber int) (string, bool, error)
	IsAdmin(ctx context.Context, userID uint) (bool, error)
}

type campRepository struct {
	db *gorm.DB
}

// NewCampRepository creates a new camp repository
func NewCampRepository(db *gorm.DB) CampRepository {
	return &campRepository{db: db}
}

func (r *campRepository) GetByID(ctx context.Context, campID uint) (*models.Camp, error) {
	var camp models.Camp
	err := cache.Aside(ctx, cache.CampKey(campID), &camp, cache.CampTTL, func() error {
		return r.db.WithContext(ctx).First(&camp, campID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Camp", campID)
		}
		return nil, err
	}
	return &camp, nil
}

func (r *campRepository) CohortRole(ctx context.Context, userID, campID uint, cohortNumber int) (string, bool, error) {
	var member models.CohortMember
	err := r.db.WithContext(ctx).
		Select("role").
		Where("camp_id = ? AND cohort_number = ? AND user_id = ?", campID, cohortNumber, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}

func (r *campRepository) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}
