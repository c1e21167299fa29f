package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/searchtemplate"
)

type SearchTemplateHandler struct {
	uc searchtemplate.UseCase
}

func NewSearchTemplateHandler(uc searchtemplate.UseCase) *SearchTemplateHandler {
	return &SearchTemplateHandler{uc: uc}
}

type createTemplateRequest struct {
	Name    string          `json:"name"`
	Filters json.RawMessage `json:"filters"`
}

// Create saves a candidate-search template for the calling enterprise.
// @Summary Create search template
// @Tags    templates
// @Accept  json
// @Produce json
// @Param   input body createTemplateRequest true "template payload"
// @Security BearerAuth
// @Success 201 {object} searchtemplate.SearchTemplate
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /search-templates [post]
func (h *SearchTemplateHandler) Create(c *fiber.Ctx) error {
	actorID, role, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	if role != auth.RoleEnterprise {
		return presenter.Error(c, http.StatusForbidden, "réservé aux comptes entreprise")
	}
	var req createTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	t, err := h.uc.Create(c.Context(), actorID, req.Name, req.Filters)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// List returns the caller's saved templates.
// @Summary List search templates
// @Tags    templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} searchtemplate.SearchTemplate
// @Router  /search-templates [get]
func (h *SearchTemplateHandler) List(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	ts, err := h.uc.List(c.Context(), actorID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if ts == nil {
		ts = []searchtemplate.SearchTemplate{}
	}
	return presenter.JSON(c, http.StatusOK, ts)
}

// Delete removes one of the caller's templates.
// @Summary Delete search template
// @Tags    templates
// @Param   id path string true "Template ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Router  /search-templates/{id} [delete]
func (h *SearchTemplateHandler) Delete(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID invalide")
	}
	if err := h.uc.Delete(c.Context(), actorID, id); err != nil {
		return presenter.FromError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
