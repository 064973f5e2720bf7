package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"majlis/internal/config"
	"majlis/internal/models"
	"majlis/internal/repository"
	"majlis/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStudyHallTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Camp{},
		&models.CohortMember{},
		&models.DailyTask{},
		&models.TaskProgress{},
		&models.ContentItem{},
		&models.ContentUpvote{},
		&models.ContentSave{},
		&models.ModerationRecord{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		TrendingThreshold: 5,
		DefaultPageSize:   20,
		AdminPageSize:     50,
	}
}

func newStudyHallServer(db *gorm.DB) *Server {
	contentRepo := repository.NewContentRepository(db)
	campRepo := repository.NewCampRepository(db)
	cfg := testConfig()
	return &Server{
		config:           cfg,
		db:               db,
		contentRepo:      contentRepo,
		campRepo:         campRepo,
		studyHallService: service.NewStudyHallService(contentRepo, campRepo, cfg.TrendingThreshold),
	}
}

type studyHallFixture struct {
	camp     models.Camp
	member   models.User
	other    models.User
	outsider models.User
	admin    models.User
}

func seedStudyHall(t *testing.T, db *gorm.DB) studyHallFixture {
	t.Helper()

	f := studyHallFixture{
		camp:     models.Camp{Name: "Ramadan Camp", SurahName: "Al-Kahf", DurationDays: 14, ActiveCohort: 1},
		member:   models.User{DisplayName: "Aisha", Email: "aisha@e.com", Password: "pw"},
		other:    models.User{DisplayName: "Bilal", Email: "bilal@e.com", Password: "pw"},
		outsider: models.User{DisplayName: "Zayd", Email: "zayd@e.com", Password: "pw"},
		admin:    models.User{DisplayName: "Admin", Email: "admin@e.com", Password: "pw", IsAdmin: true},
	}
	for _, m := range []any{&f.camp, &f.member, &f.other, &f.outsider, &f.admin} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	for _, userID := range []uint{f.member.ID, f.other.ID} {
		if err := db.Create(&models.CohortMember{
			CampID: f.camp.ID, CohortNumber: 1, UserID: userID, Role: models.CohortRoleParticipant,
		}).Error; err != nil {
			t.Fatalf("seed membership: %v", err)
		}
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []models.ContentItem{
		{ProgressID: 1, Type: models.ContentTypeReflection, Body: "Patience is a lantern", UserID: f.member.ID,
			CampID: f.camp.ID, CohortNumber: 1, DayNumber: 1, TaskTitle: "Verses 1-10", TaskType: "memorization", CreatedAt: base},
		{ProgressID: 2, Type: models.ContentTypeBenefits, Body: "Private note to self", UserID: f.other.ID,
			CampID: f.camp.ID, CohortNumber: 1, DayNumber: 1, TaskType: "memorization", IsPrivate: true, CreatedAt: base.Add(time.Minute)},
		{ProgressID: 3, Type: models.ContentTypeReflection, Body: "Gratitude changes everything", UserID: f.other.ID,
			CampID: f.camp.ID, CohortNumber: 1, DayNumber: 2, TaskTitle: "Verses 11-20", TaskType: "revision", CreatedAt: base.Add(2 * time.Minute)},
		// Different cohort: must never leak into cohort 1 feeds.
		{ProgressID: 4, Type: models.ContentTypeReflection, Body: "Cohort two reflection", UserID: f.other.ID,
			CampID: f.camp.ID, CohortNumber: 2, DayNumber: 1, TaskType: "memorization", CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed content: %v", err)
		}
	}

	// Six upvotes push the first item over the trending threshold.
	for u := uint(100); u < 106; u++ {
		if err := db.Create(&models.ContentUpvote{UserID: u, ContentItemID: items[0].ID}).Error; err != nil {
			t.Fatalf("seed upvotes: %v", err)
		}
	}

	return f
}

func studyHallApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Get("/api/camps/:campId/study-hall", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return s.GetStudyHall(c)
	})
	app.Get("/api/camps/:campId/study-hall/scroll", func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return s.GetStudyHallScroll(c)
	})
	return app
}

type feedResponse struct {
	Content    []models.ContentItem `json:"content"`
	Pagination struct {
		Page       int  `json:"page"`
		TotalPages int  `json:"total_pages"`
		TotalItems int  `json:"total_items"`
		HasNext    bool `json:"has_next"`
		HasPrev    bool `json:"has_prev"`
	} `json:"pagination"`
}

func TestGetStudyHall(t *testing.T) {
	t.Parallel()
	db := setupStudyHallTestDB(t)
	s := newStudyHallServer(db)
	f := seedStudyHall(t, db)
	app := studyHallApp(s, f.member.ID)

	path := fmt.Sprintf("/api/camps/%d/study-hall", f.camp.ID)

	t.Run("member sees cohort feed without others' private items", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body feedResponse
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Pagination.TotalItems != 2 {
			t.Errorf("expected 2 items, got %d", body.Pagination.TotalItems)
		}
		for _, item := range body.Content {
			if item.IsPrivate {
				t.Errorf("private item %d leaked into feed", item.ID)
			}
			if item.CohortNumber != 1 {
				t.Errorf("cohort %d item leaked into cohort 1 feed", item.CohortNumber)
			}
		}
	})

	t.Run("trending flag set from upvotes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?tab=trending", nil)
		resp, _ := app.Test(req)
		var body feedResponse
		json.NewDecoder(resp.Body).Decode(&body)
		if len(body.Content) != 1 {
			t.Fatalf("expected 1 trending item, got %d", len(body.Content))
		}
		if !body.Content[0].Trending || body.Content[0].UpvoteCount != 6 {
			t.Errorf("trending annotation wrong: trending=%v upvotes=%d",
				body.Content[0].Trending, body.Content[0].UpvoteCount)
		}
	})

	t.Run("search matches task title", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?q=verses+11", nil)
		resp, _ := app.Test(req)
		var body feedResponse
		json.NewDecoder(resp.Body).Decode(&body)
		if len(body.Content) != 1 || body.Content[0].DayNumber != 2 {
			t.Errorf("expected the day-2 reflection, got %+v", body.Content)
		}
	})

	t.Run("day filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?day=2", nil)
		resp, _ := app.Test(req)
		var body feedResponse
		json.NewDecoder(resp.Body).Decode(&body)
		if len(body.Content) != 1 {
			t.Errorf("expected 1 item for day 2, got %d", len(body.Content))
		}
	})

	t.Run("garbled day filter is a 400, not an unfiltered feed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?day=abc", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		var errBody models.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Code != models.CodeValidation {
			t.Errorf("expected code %s, got %s", models.CodeValidation, errBody.Code)
		}
	})

	t.Run("non-positive day filter is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?day=0", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("garbled cohort_number is a 400, not the active cohort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?cohort_number=abc", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("invalid sort is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, path+"?sort=hotness", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown camp is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/camps/9999/study-hall", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("invalid camp id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/camps/abc/study-hall", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestGetStudyHallScope(t *testing.T) {
	t.Parallel()
	db := setupStudyHallTestDB(t)
	s := newStudyHallServer(db)
	f := seedStudyHall(t, db)

	t.Run("outsider gets 403", func(t *testing.T) {
		app := studyHallApp(s, f.outsider.ID)
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/camps/%d/study-hall", f.camp.ID), nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("admin sees private items", func(t *testing.T) {
		app := studyHallApp(s, f.admin.ID)
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/camps/%d/study-hall", f.camp.ID), nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body feedResponse
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Pagination.TotalItems != 3 {
			t.Errorf("admin should see 3 cohort-1 items, got %d", body.Pagination.TotalItems)
		}
	})

	t.Run("member cannot read another cohort", func(t *testing.T) {
		app := studyHallApp(s, f.member.ID)
		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/camps/%d/study-hall?cohort_number=2", f.camp.ID), nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403, got %d", resp.StatusCode)
		}
	})
}

func TestGetStudyHallScroll(t *testing.T) {
	t.Parallel()
	db := setupStudyHallTestDB(t)
	s := newStudyHallServer(db)
	f := seedStudyHall(t, db)
	app := studyHallApp(s, f.member.ID)

	type scrollResponse struct {
		Content    []models.ContentItem `json:"content"`
		NextCursor string               `json:"next_cursor"`
		HasMore    bool                 `json:"has_more"`
	}

	var walked []uint
	cursor := ""
	for i := 0; i < 10; i++ {
		url := fmt.Sprintf("/api/camps/%d/study-hall/scroll?limit=1&cursor=%s", f.camp.ID, cursor)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body scrollResponse
		json.NewDecoder(resp.Body).Decode(&body)
		for _, item := range body.Content {
			walked = append(walked, item.ID)
		}
		if !body.HasMore {
			break
		}
		cursor = body.NextCursor
	}

	if len(walked) != 2 {
		t.Fatalf("expected to walk 2 visible items, got %d (%v)", len(walked), walked)
	}
	seen := map[uint]bool{}
	for _, id := range walked {
		if seen[id] {
			t.Errorf("item %d returned twice across cursor pages", id)
		}
		seen[id] = true
	}

	badReq := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/camps/%d/study-hall/scroll?day=abc", f.camp.ID), nil)
	resp, _ := app.Test(badReq)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for garbled day, got %d", resp.StatusCode)
	}
}
