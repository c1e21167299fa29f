package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/reputation"
)

type ReputationHandler struct {
	uc reputation.UseCase
}

func NewReputationHandler(uc reputation.UseCase) *ReputationHandler {
	return &ReputationHandler{uc: uc}
}

// Me returns the caller's level, experience and rank.
// @Summary My reputation
// @Tags    reputation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} reputation.Reputation
// @Router  /reputation/me [get]
func (h *ReputationHandler) Me(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	rep, err := h.uc.ForUser(c.Context(), actorID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, rep)
}

// Leaderboard returns the top candidates by experience.
// @Summary Reputation leaderboard
// @Tags    reputation
// @Produce json
// @Param   limit query int false "Max entries (default 20)"
// @Security BearerAuth
// @Success 200 {array} reputation.LeaderboardEntry
// @Router  /reputation/leaderboard [get]
func (h *ReputationHandler) Leaderboard(c *fiber.Ctx) error {
	if _, _, err := currentUser(c); err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	entries, err := h.uc.Leaderboard(c.Context(), limit)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, entries)
}
