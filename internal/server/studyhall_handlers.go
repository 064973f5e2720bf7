package server

import (
	"majlis/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetStudyHall returns one page of a cohort's study hall feed.
// Query: page, limit, sort, tab, q, day, task_type, cohort_number.
func (s *Server) GetStudyHall(c *fiber.Ctx) error {
	campID, err := s.parseID(c, "campId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	cohortNumber, err := queryOptionalInt(c, "cohort_number")
	if err != nil {
		return nil
	}
	day, err := queryOptionalInt(c, "day")
	if err != nil {
		return nil
	}

	page, err := s.studyHallService.Feed(c.UserContext(), service.FeedInput{
		ViewerID:     userID,
		CampID:       campID,
		CohortNumber: cohortNumber,
		Page:         c.QueryInt("page", 1),
		PageSize:     parsePageSize(c, s.config.DefaultPageSize),
		Tab:          c.Query("tab"),
		Sort:         c.Query("sort"),
		Search:       c.Query("q"),
		Day:          day,
		TaskType:     c.Query("task_type"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"content": page.Items,
		"pagination": fiber.Map{
			"page":        page.Page,
			"total_pages": page.TotalPages,
			"total_items": page.TotalItems,
			"has_next":    page.HasNext,
			"has_prev":    page.HasPrev,
		},
	})
}

// GetStudyHallScroll returns one cursor slice of the feed for infinite
// scrolling. Query: cursor, limit, plus the same filters as GetStudyHall.
func (s *Server) GetStudyHallScroll(c *fiber.Ctx) error {
	campID, err := s.parseID(c, "campId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	cohortNumber, err := queryOptionalInt(c, "cohort_number")
	if err != nil {
		return nil
	}
	day, err := queryOptionalInt(c, "day")
	if err != nil {
		return nil
	}

	slice, err := s.studyHallService.CursorFeed(c.UserContext(), service.CursorFeedInput{
		ViewerID:     userID,
		CampID:       campID,
		CohortNumber: cohortNumber,
		Cursor:       c.Query("cursor"),
		PageSize:     parsePageSize(c, s.config.DefaultPageSize),
		Tab:          c.Query("tab"),
		Sort:         c.Query("sort"),
		Search:       c.Query("q"),
		Day:          day,
		TaskType:     c.Query("task_type"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"content":     slice.Items,
		"next_cursor": slice.NextCursor,
		"has_more":    slice.HasMore,
	})
}
