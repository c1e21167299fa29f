package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/favorite"
)

type FavoriteHandler struct {
	uc favorite.UseCase
}

func NewFavoriteHandler(uc favorite.UseCase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type toggleFavoriteRequest struct {
	TargetID   string `json:"targetId"`
	TargetType string `json:"targetType"`
}

type toggleFavoriteResponse struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}

// Toggle flips the favorite flag for one target and returns the new state.
// @Summary Toggle favorite
// @Tags    favorites
// @Accept  json
// @Produce json
// @Param   input body toggleFavoriteRequest true "target"
// @Security BearerAuth
// @Success 200 {object} toggleFavoriteResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /favorites/toggle [post]
func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	var req toggleFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "targetId invalide")
	}
	state, err := h.uc.Toggle(c.Context(), actorID, targetID, favorite.TargetType(req.TargetType))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toggleFavoriteResponse{Success: true, IsFavorite: state})
}

// List returns the caller's favorites of one target type.
// @Summary List favorites
// @Tags    favorites
// @Produce json
// @Param   targetType query string true "QUIZ | JOB | CANDIDATE"
// @Security BearerAuth
// @Success 200 {array} favorite.Favorite
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	favs, err := h.uc.List(c.Context(), actorID, favorite.TargetType(c.Query("targetType")))
	if err != nil {
		return presenter.FromError(c, err)
	}
	if favs == nil {
		favs = []favorite.Favorite{}
	}
	return presenter.JSON(c, http.StatusOK, favs)
}
