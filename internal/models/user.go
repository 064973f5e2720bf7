// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a camp participant, supervisor, or platform admin. Account CRUD and
// authentication live outside this service; the model exists for joins, scope
// checks, and seeding.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	IsAdmin     bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
