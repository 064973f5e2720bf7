// Package seed provides helpers to create demo data for development and
// testing. Not for production use.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"majlis/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var surahNames = []string{
	"Al-Baqarah", "Al-Imran", "An-Nisa", "Al-Kahf", "Maryam",
	"Ya-Sin", "Al-Mulk", "Ar-Rahman", "Al-Waqiah", "Juz Amma",
}

var taskTypes = []string{"memorization", "revision", "listening", "tafsir"}

var reflectionOpeners = []string{
	"Today's verses reminded me that",
	"What struck me most was",
	"I keep returning to the idea that",
	"Memorizing this passage taught me that",
	"The recurring theme I noticed is that",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a bcrypt-hashed password.
func (f *Factory) CreateUser(isAdmin bool) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		DisplayName: gofakeit.Name(),
		Email:       gofakeit.Email(),
		Password:    string(hashed),
		IsAdmin:     isAdmin,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCamp persists a camp with a daily task per camp day.
func (f *Factory) CreateCamp(activeCohort int) (*models.Camp, error) {
	duration := 7 + f.rng.Intn(3)*7 // 7, 14, or 21 days
	camp := &models.Camp{
		Name:         fmt.Sprintf("%s Memorization Camp", surahNames[f.rng.Intn(len(surahNames))]),
		SurahName:    surahNames[f.rng.Intn(len(surahNames))],
		DurationDays: duration,
		ActiveCohort: activeCohort,
	}
	if err := f.db.Create(camp).Error; err != nil {
		return nil, err
	}

	for day := 1; day <= duration; day++ {
		task := &models.DailyTask{
			CampID:    camp.ID,
			DayNumber: day,
			Title:     fmt.Sprintf("Day %d: Verses %d-%d", day, (day-1)*10+1, day*10),
			TaskType:  taskTypes[f.rng.Intn(len(taskTypes))],
		}
		if err := f.db.Create(task).Error; err != nil {
			return nil, err
		}
	}
	return camp, nil
}

// Enroll adds a user to a camp cohort.
func (f *Factory) Enroll(camp *models.Camp, cohortNumber int, user *models.User, role string) error {
	return f.db.Create(&models.CohortMember{
		CampID:       camp.ID,
		CohortNumber: cohortNumber,
		UserID:       user.ID,
		Role:         role,
	}).Error
}

// CompleteTaskWithContent records task progress for a user and attaches a
// reflection, and sometimes a benefits note, to it.
func (f *Factory) CompleteTaskWithContent(camp *models.Camp, cohortNumber int, user *models.User, task *models.DailyTask) error {
	completedAt := time.Now().Add(-time.Duration(f.rng.Intn(camp.DurationDays*24)) * time.Hour)
	progress := &models.TaskProgress{
		UserID:       user.ID,
		TaskID:       task.ID,
		CampID:       camp.ID,
		CohortNumber: cohortNumber,
		CompletedAt:  completedAt,
	}
	if err := f.db.Create(progress).Error; err != nil {
		return err
	}

	reflection := &models.ContentItem{
		ProgressID:   progress.ID,
		Type:         models.ContentTypeReflection,
		Body:         f.reflectionBody(),
		UserID:       user.ID,
		CampID:       camp.ID,
		CohortNumber: cohortNumber,
		DayNumber:    task.DayNumber,
		TaskTitle:    task.Title,
		TaskType:     task.TaskType,
		IsPrivate:    f.rng.Intn(5) == 0, // roughly a fifth kept private
		CreatedAt:    completedAt,
	}
	if err := f.db.Create(reflection).Error; err != nil {
		return err
	}

	if f.rng.Intn(2) == 0 {
		benefit := &models.ContentItem{
			ProgressID:   progress.ID,
			Type:         models.ContentTypeBenefits,
			Body:         gofakeit.Sentence(12),
			UserID:       user.ID,
			CampID:       camp.ID,
			CohortNumber: cohortNumber,
			DayNumber:    task.DayNumber,
			TaskTitle:    task.Title,
			TaskType:     task.TaskType,
			CreatedAt:    completedAt.Add(5 * time.Minute),
		}
		if err := f.db.Create(benefit).Error; err != nil {
			return err
		}
	}
	return nil
}

func (f *Factory) reflectionBody() string {
	opener := reflectionOpeners[f.rng.Intn(len(reflectionOpeners))]
	return fmt.Sprintf("%s %s", opener, gofakeit.Paragraph(1, 2, 8, " "))
}

// SprinkleEngagement distributes upvotes and saves from cohort members over
// the cohort's content. A few items get enough upvotes to trend.
func (f *Factory) SprinkleEngagement(camp *models.Camp, cohortNumber int, users []*models.User) error {
	var items []models.ContentItem
	if err := f.db.Where("camp_id = ? AND cohort_number = ?", camp.ID, cohortNumber).Find(&items).Error; err != nil {
		return err
	}

	for _, item := range items {
		upvoters := f.rng.Intn(len(users) + 1)
		for i := 0; i < upvoters; i++ {
			if users[i].ID == item.UserID {
				continue
			}
			if err := f.db.Create(&models.ContentUpvote{
				UserID:        users[i].ID,
				ContentItemID: item.ID,
			}).Error; err != nil {
				return err
			}
		}
		if f.rng.Intn(3) == 0 {
			saver := users[f.rng.Intn(len(users))]
			if err := f.db.Create(&models.ContentSave{
				UserID:        saver.ID,
				ContentItemID: item.ID,
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
