package seed

import (
	"fmt"
	"log"
	"math/rand"

	"majlis/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumCamps    int
	ShouldClean bool
}

// Seeder populates the database with demo camps, cohorts, and study hall
// content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Deletion order respects references.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.ModerationRecord{},
		&models.ContentUpvote{},
		&models.ContentSave{},
		&models.ContentItem{},
		&models.TaskProgress{},
		&models.DailyTask{},
		&models.CohortMember{},
		&models.Camp{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, camps with two cohorts each, task progress, content, and
// engagement.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers < 4 {
		opts.NumUsers = 4
	}
	if opts.NumCamps < 1 {
		opts.NumCamps = 1
	}

	log.Printf("Seeding %d users and %d camps...", opts.NumUsers, opts.NumCamps)

	admin, err := s.factory.CreateUser(true)
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	log.Printf("Admin user: %s", admin.Email)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser(false)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.NumCamps; i++ {
		if err := s.seedCamp(users); err != nil {
			return err
		}
	}

	log.Println("Seeding complete")
	return nil
}

func (s *Seeder) seedCamp(users []*models.User) error {
	camp, err := s.factory.CreateCamp(2)
	if err != nil {
		return fmt.Errorf("creating camp: %w", err)
	}

	var tasks []models.DailyTask
	if err := s.db.Where("camp_id = ?", camp.ID).Order("day_number").Find(&tasks).Error; err != nil {
		return err
	}

	// Split enrolled users across two cohorts, first member of each cohort
	// acting as supervisor.
	shuffled := make([]*models.User, len(users))
	copy(shuffled, users)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	half := len(shuffled) / 2
	cohorts := map[int][]*models.User{1: shuffled[:half], 2: shuffled[half:]}

	for cohortNumber, members := range cohorts {
		for i, user := range members {
			role := models.CohortRoleParticipant
			if i == 0 {
				role = models.CohortRoleSupervisor
			}
			if err := s.factory.Enroll(camp, cohortNumber, user, role); err != nil {
				return fmt.Errorf("enrolling user: %w", err)
			}
		}

		// Each member completes a prefix of the camp's tasks.
		for _, user := range members {
			completed := rand.Intn(len(tasks)) + 1
			for _, task := range tasks[:completed] {
				if err := s.factory.CompleteTaskWithContent(camp, cohortNumber, user, &task); err != nil {
					return fmt.Errorf("completing task: %w", err)
				}
			}
		}

		if err := s.factory.SprinkleEngagement(camp, cohortNumber, members); err != nil {
			return fmt.Errorf("sprinkling engagement: %w", err)
		}
	}

	log.Printf("Seeded camp %q (%d days, 2 cohorts)", camp.Name, camp.DurationDays)
	return nil
}
