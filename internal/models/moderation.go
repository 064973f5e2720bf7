package models

import "time"

// Moderation actions.
const (
	ModerationActionEdit   = "edit"
	ModerationActionDelete = "delete"
)

// ModerationRecord is the audit row written on every admin edit or delete of
// third-party content. It deliberately has no foreign key to content_items:
// the record outlives the item it describes.
type ModerationRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ContentItemID uint      `gorm:"not null;index" json:"content_item_id"`
	ActorID       uint      `gorm:"not null;index" json:"actor_id"`
	Action        string    `gorm:"not null" json:"action"`
	Reason        string    `gorm:"type:text;not null" json:"reason"`
	PriorBody     string    `gorm:"type:text" json:"prior_body"`
	CreatedAt     time.Time `json:"created_at"`
}
