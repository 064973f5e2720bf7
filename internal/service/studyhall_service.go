package service

import (
	"context"
	"time"

	"majlis/internal/models"
	"majlis/internal/observability"
	"majlis/internal/repository"
	"majlis/internal/studyhall"
)

// StudyHallService assembles the cohort feed: one repository fetch, then the
// in-memory pipeline (visibility, trending annotation, query, pagination).
type StudyHallService struct {
	contentRepo       repository.ContentRepository
	campRepo          repository.CampRepository
	trendingThreshold int
}

// FeedInput carries one feed request. CohortNumber nil resolves to the camp's
// active cohort.
type FeedInput struct {
	ViewerID     uint
	CampID       uint
	CohortNumber *int
	Page         int
	PageSize     int
	Tab          string
	Sort         string
	Search       string
	Day          *int
	TaskType     string
}

// CursorFeedInput carries one infinite-scroll request.
type CursorFeedInput struct {
	ViewerID     uint
	CampID       uint
	CohortNumber *int
	Cursor       string
	PageSize     int
	Tab          string
	Sort         string
	Search       string
	Day          *int
	TaskType     string
}

func NewStudyHallService(
	contentRepo repository.ContentRepository,
	campRepo repository.CampRepository,
	trendingThreshold int,
) *StudyHallService {
	if trendingThreshold < 1 {
		trendingThreshold = studyhall.DefaultTrendingThreshold
	}
	return &StudyHallService{
		contentRepo:       contentRepo,
		campRepo:          campRepo,
		trendingThreshold: trendingThreshold,
	}
}

// resolveScope resolves the target cohort and authorizes the viewer against
// it. Admins may view any cohort; everyone else must be a member of the exact
// (camp, cohort) pair they are asking for.
func (s *StudyHallService) resolveScope(ctx context.Context, viewerID, campID uint, cohortNumber *int) (int, bool, error) {
	camp, err := s.campRepo.GetByID(ctx, campID)
	if err != nil {
		return 0, false, err
	}

	cohort := camp.ActiveCohort
	if cohortNumber != nil {
		cohort = *cohortNumber
	}
	if cohort < 1 {
		return 0, false, models.NewValidationError("cohort number must be at least 1")
	}

	isAdmin, err := s.campRepo.IsAdmin(ctx, viewerID)
	if err != nil {
		return 0, false, err
	}
	if isAdmin {
		return cohort, true, nil
	}

	_, member, err := s.campRepo.CohortRole(ctx, viewerID, campID, cohort)
	if err != nil {
		return 0, false, err
	}
	if !member {
		return 0, false, models.NewScopeViolationError("You are not a member of this cohort")
	}
	return cohort, false, nil
}

// sequence runs everything up to (but not including) pagination and returns
// the ordered, filtered slice. All downstream views derive from this one
// batch; nothing re-fetches mid-computation.
func (s *StudyHallService) sequence(
	ctx context.Context, viewerID, campID uint, cohortNumber *int,
	opts studyhall.Options, day *int,
) ([]*models.ContentItem, error) {
	cohort, isAdmin, err := s.resolveScope(ctx, viewerID, campID, cohortNumber)
	if err != nil {
		return nil, err
	}

	items, err := s.contentRepo.FetchCohort(ctx, campID, cohort, repository.FetchOptions{
		ViewerID: viewerID,
		Day:      day,
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.contentRepo.SavedContentIDs(ctx, viewerID, campID, cohort)
	if err != nil {
		return nil, err
	}

	// Admin feeds skip the visibility filter: moderation has to see private
	// items to act on them.
	if !isAdmin {
		items = studyhall.Visible(items, viewerID)
	}
	studyhall.Annotate(items, s.trendingThreshold)

	return studyhall.Query(items, viewerID, saved, opts)
}

// Feed returns one classic page of the cohort feed.
func (s *StudyHallService) Feed(ctx context.Context, in FeedInput) (*studyhall.Page, error) {
	start := time.Now()
	opts := studyhall.Options{
		Tab:      in.Tab,
		Sort:     in.Sort,
		Search:   in.Search,
		Day:      in.Day,
		TaskType: in.TaskType,
	}

	seq, err := s.sequence(ctx, in.ViewerID, in.CampID, in.CohortNumber, opts, in.Day)
	if err != nil {
		return nil, err
	}

	page, err := studyhall.Paginate(seq, in.Page, in.PageSize)
	if err != nil {
		return nil, err
	}

	observability.ObserveFeedQuery(orDefault(in.Tab, studyhall.TabAll), orDefault(in.Sort, studyhall.SortNewest), start)
	return page, nil
}

// CursorFeed returns one cursor slice of the cohort feed. It shares the
// entire pipeline with Feed except the final pagination step.
func (s *StudyHallService) CursorFeed(ctx context.Context, in CursorFeedInput) (*studyhall.CursorPage, error) {
	start := time.Now()
	opts := studyhall.Options{
		Tab:      in.Tab,
		Sort:     in.Sort,
		Search:   in.Search,
		Day:      in.Day,
		TaskType: in.TaskType,
	}

	seq, err := s.sequence(ctx, in.ViewerID, in.CampID, in.CohortNumber, opts, in.Day)
	if err != nil {
		return nil, err
	}

	page, err := studyhall.CursorPaginate(seq, in.Cursor, in.PageSize)
	if err != nil {
		return nil, err
	}

	observability.ObserveFeedQuery(orDefault(in.Tab, studyhall.TabAll), orDefault(in.Sort, studyhall.SortNewest), start)
	return page, nil
}

// ExportSequence returns the full visible cohort sequence, newest first, with
// no search, tab, or pagination applied. Consumed by the spreadsheet export
// job, which does its own formatting.
func (s *StudyHallService) ExportSequence(ctx context.Context, viewerID, campID uint, cohortNumber *int) ([]*models.ContentItem, error) {
	return s.sequence(ctx, viewerID, campID, cohortNumber, studyhall.Options{}, nil)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
