package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/matching"
)

type MatchingHandler struct {
	reader *matching.Reader
	writer *matching.Writer
}

func NewMatchingHandler(reader *matching.Reader, writer *matching.Writer) *MatchingHandler {
	return &MatchingHandler{reader: reader, writer: writer}
}

// Cache serves pre-computed matches for a posting the caller owns.
// @Summary Cached candidate matches for a job posting
// @Tags    matching
// @Produce json
// @Param   jobPostingId query string true "Job posting ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /matching/cache [get]
func (h *MatchingHandler) Cache(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	result, err := h.reader.CachedMatches(c.Context(), actorID, c.Query("jobPostingId"))
	if err != nil {
		// This path historically attaches the raw message on 500s.
		return presenter.FromErrorVerbose(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success":   true,
		"matches":   result.Matches,
		"total":     result.Total,
		"fromCache": result.FromCache,
		"cachedAt":  result.CachedAt,
	})
}

// Generate recomputes one posting's matches on demand. Same authorization
// chain as Cache; overlapping calls are last-writer-wins.
// @Summary Regenerate matches for a job posting
// @Tags    matching
// @Produce json
// @Param   jobPostingId query string true "Job posting ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /matching/generate [post]
func (h *MatchingHandler) Generate(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	// Same validation chain as the read endpoint.
	jobPostingID, err := h.reader.Authorize(c.Context(), actorID, c.Query("jobPostingId"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	rows, err := h.writer.GenerateForPosting(c.Context(), jobPostingID)
	if err != nil {
		return presenter.FromErrorVerbose(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"rows":    rows,
	})
}
