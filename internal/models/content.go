package models

import "time"

// Content types. A single progress record yields at most one item per type.
const (
	ContentTypeReflection = "reflection"
	ContentTypeBenefits   = "benefits"
)

// ValidContentType reports whether t is a known content type.
func ValidContentType(t string) bool {
	return t == ContentTypeReflection || t == ContentTypeBenefits
}

// ContentItem is a reflection or benefit a participant attached to a completed
// daily task. Camp/cohort/day scoping is fixed at creation and never
// reassigned. There is no soft-delete column: moderation delete is a hard
// removal, with the audit trail kept in moderation_records.
type ContentItem struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ProgressID   uint   `gorm:"not null;uniqueIndex:idx_progress_type" json:"progress_id"`
	Type         string `gorm:"not null;uniqueIndex:idx_progress_type" json:"type"`
	Body         string `gorm:"type:text;not null" json:"body"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Author       User   `gorm:"foreignKey:UserID" json:"author"`
	CampID       uint   `gorm:"not null;index:idx_content_cohort" json:"camp_id"`
	CohortNumber int    `gorm:"not null;index:idx_content_cohort" json:"cohort_number"`
	DayNumber    int    `gorm:"not null" json:"day_number"`
	// TaskTitle and TaskType are denormalized from the daily task at creation
	// so feed filtering does not join the tasks table per request.
	TaskTitle string `json:"task_title"`
	TaskType  string `json:"task_type"`
	IsPrivate bool   `gorm:"default:false" json:"is_private"`
	// UpvoteCount/SaveCount are not persisted; computed at query time
	UpvoteCount int `gorm:"->" json:"upvote_count"`
	SaveCount   int `gorm:"->" json:"save_count"`
	// Saved indicates whether the requesting viewer bookmarked this item (computed)
	Saved bool `gorm:"->" json:"saved"`
	// Trending is derived in memory from UpvoteCount; never stored
	Trending  bool      `gorm:"-" json:"trending"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentUpvote is an engagement row. Increments and decrements are owned by
// the like/save collaborator endpoints; study hall only reads counts.
type ContentUpvote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_upvote_pair" json:"user_id"`
	ContentItemID uint      `gorm:"not null;uniqueIndex:idx_upvote_pair" json:"content_item_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContentSave is a viewer bookmark on a content item.
type ContentSave struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_save_pair" json:"user_id"`
	ContentItemID uint      `gorm:"not null;uniqueIndex:idx_save_pair" json:"content_item_id"`
	CreatedAt     time.Time `json:"created_at"`
}
