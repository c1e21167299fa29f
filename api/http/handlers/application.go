package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/application"
	"github.com/prepmatch/backend/pkg/auth"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	JobPostingID string `json:"jobPostingId"`
}

// Apply records a candidate's application to an active posting.
// @Summary Apply to a posting
// @Tags    applications
// @Accept  json
// @Produce json
// @Param   input body applyRequest true "posting to apply to"
// @Security BearerAuth
// @Success 201 {object} application.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	actorID, role, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	if role != auth.RoleCandidate {
		return presenter.Error(c, http.StatusForbidden, "réservé aux comptes candidat")
	}
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	jobPostingID, err := uuid.Parse(req.JobPostingID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "jobPostingId invalide")
	}
	a, err := h.uc.Apply(c.Context(), actorID, jobPostingID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, a)
}

// List returns the caller's applications.
// @Summary List my applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Router  /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	limit, offset := parseLimitOffset(c, 50)
	as, err := h.uc.ListMine(c.Context(), actorID, limit, offset)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if as == nil {
		as = []application.Application{}
	}
	return presenter.JSON(c, http.StatusOK, as)
}
