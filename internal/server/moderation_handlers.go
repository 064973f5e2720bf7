package server

import (
	"strings"

	"majlis/internal/models"
	"majlis/internal/service"

	"github.com/gofiber/fiber/v2"
)

// moderateEditRequest accepts the body under several field names because
// older clients send journal_entry (reflections) or notes (benefits).
type moderateEditRequest struct {
	Body         string `json:"body"`
	JournalEntry string `json:"journal_entry"`
	Notes        string `json:"notes"`
	Type         string `json:"type"`
	Reason       string `json:"reason"`
}

func (r *moderateEditRequest) newBody() string {
	for _, v := range []string{r.Body, r.JournalEntry, r.Notes} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type moderateDeleteRequest struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// GetContentForModeration returns a single content item without visibility
// filtering, so admins can inspect private items before acting.
func (s *Server) GetContentForModeration(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.contentRepo.GetByID(c.UserContext(), id, 0)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// ModerateEditContent replaces a content item's body on behalf of an admin.
func (s *Server) ModerateEditContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req moderateEditRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Type != "" && !models.ValidContentType(req.Type) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid content type"))
	}

	item, err := s.moderationService.Edit(c.UserContext(), service.ModerateEditInput{
		ContentID: id,
		NewBody:   req.newBody(),
		Reason:    req.Reason,
		ActorID:   userID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// ModerateDeleteContent hard-removes a content item on behalf of an admin.
func (s *Server) ModerateDeleteContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req moderateDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Type != "" && !models.ValidContentType(req.Type) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid content type"))
	}

	if err := s.moderationService.Delete(c.UserContext(), service.ModerateDeleteInput{
		ContentID: id,
		Reason:    req.Reason,
		ActorID:   userID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Content deleted"})
}

// GetContentAuditTrail lists the moderation records for one content item.
func (s *Server) GetContentAuditTrail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	records, err := s.moderationService.AuditTrail(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}

// GetRecentModerationRecords lists recent moderation actions across all
// content, newest first.
func (s *Server) GetRecentModerationRecords(c *fiber.Ctx) error {
	limit := parsePageSize(c, s.config.AdminPageSize)
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, err := s.moderationService.RecentActions(c.UserContext(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}
