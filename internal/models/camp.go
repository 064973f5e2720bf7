package models

import "time"

// Cohort member roles.
const (
	CohortRoleParticipant = "participant"
	CohortRoleSupervisor  = "supervisor"
)

// Camp is a fixed-duration structured memorization program around a surah.
type Camp struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	SurahName    string    `json:"surah_name"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	ActiveCohort int       `gorm:"not null;default:1" json:"active_cohort"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CohortMember ties a user to one cohort of one camp. Content visibility and
// moderation scope checks run against this table.
type CohortMember struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampID       uint      `gorm:"not null;uniqueIndex:idx_cohort_member" json:"camp_id"`
	CohortNumber int       `gorm:"not null;uniqueIndex:idx_cohort_member" json:"cohort_number"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_cohort_member" json:"user_id"`
	Role         string    `gorm:"not null;default:participant" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// DailyTask is one day's assignment inside a camp. Task definitions are owned
// by an external collaborator; study hall only reads day/type/title.
type DailyTask struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CampID    uint      `gorm:"not null;index" json:"camp_id"`
	DayNumber int       `gorm:"not null" json:"day_number"`
	Title     string    `gorm:"not null" json:"title"`
	TaskType  string    `gorm:"not null" json:"task_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskProgress records a participant completing a daily task. Written by the
// task-completion collaborator; content items reference it via ProgressID.
type TaskProgress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	TaskID       uint      `gorm:"not null;index" json:"task_id"`
	CampID       uint      `gorm:"not null;index" json:"camp_id"`
	CohortNumber int       `gorm:"not null" json:"cohort_number"`
	CompletedAt  time.Time `json:"completed_at"`
}
