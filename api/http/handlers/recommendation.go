package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/recommendation"
)

type RecommendationHandler struct {
	uc recommendation.UseCase
}

func NewRecommendationHandler(uc recommendation.UseCase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// List returns the caller's current recommendations.
// @Summary List recommendations
// @Tags    recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} recommendation.Recommendation
// @Router  /recommendations [get]
func (h *RecommendationHandler) List(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	recs, err := h.uc.ForUser(c.Context(), actorID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, recs)
}

// MarkViewed flags one recommendation as seen; viewed rows survive the next
// regeneration pass.
// @Summary Mark recommendation viewed
// @Tags    recommendations
// @Param   id path string true "Recommendation ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /recommendations/{id}/viewed [post]
func (h *RecommendationHandler) MarkViewed(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID invalide")
	}
	if err := h.uc.MarkViewed(c.Context(), actorID, id); err != nil {
		return presenter.FromError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
