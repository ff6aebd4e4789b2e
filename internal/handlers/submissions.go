package handlers

import (
	"sentinel/internal/repositories"
	"sentinel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SubmissionHandler struct {
	repo repositories.SubmissionRepository
}

func NewSubmissionHandler(repo repositories.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{repo: repo}
}

// ListSubmissions handles GET /api/submissions?limit=N.
func (h *SubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	list, err := h.repo.ListRecent(c.UserContext(), c.QueryInt("limit", repositories.DefaultListLimit))
	if err != nil {
		return utils.InternalError(c, "Failed to load submissions")
	}
	return utils.Success(c, fiber.Map{
		"submissions": list,
		"count":       len(list),
	})
}
