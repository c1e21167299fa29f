package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
)

type JobPostingHandler struct {
	uc jobposting.UseCase
}

func NewJobPostingHandler(uc jobposting.UseCase) *JobPostingHandler {
	return &JobPostingHandler{uc: uc}
}

type createJobPostingRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Skills        []string `json:"skills"`
	Domains       []string `json:"domains"`
	MinExperience int      `json:"minExperience"`
}

// Create registers a new posting for the calling enterprise.
// @Summary Create job posting
// @Tags    postings
// @Accept  json
// @Produce json
// @Param   input body createJobPostingRequest true "posting payload"
// @Security BearerAuth
// @Success 201 {object} jobposting.JobPosting
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /postings [post]
func (h *JobPostingHandler) Create(c *fiber.Ctx) error {
	actorID, role, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	if role != auth.RoleEnterprise {
		return presenter.Error(c, http.StatusForbidden, "réservé aux comptes entreprise")
	}
	var req createJobPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	p, err := h.uc.Create(c.Context(), jobposting.JobPosting{
		OwnerID:       actorID,
		Title:         req.Title,
		Description:   req.Description,
		IsActive:      true,
		Skills:        req.Skills,
		Domains:       req.Domains,
		MinExperience: req.MinExperience,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// List returns the caller's postings.
// @Summary List job postings
// @Tags    postings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} jobposting.JobPosting
// @Router  /postings [get]
func (h *JobPostingHandler) List(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	limit, offset := parseLimitOffset(c, 50)
	ps, err := h.uc.List(c.Context(), actorID, limit, offset)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if ps == nil {
		ps = []jobposting.JobPosting{}
	}
	return presenter.JSON(c, http.StatusOK, ps)
}

// Get returns one posting the caller owns.
// @Summary Get job posting
// @Tags    postings
// @Produce json
// @Param   id path string true "Posting ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} jobposting.JobPosting
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /postings/{id} [get]
func (h *JobPostingHandler) Get(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID invalide")
	}
	p, err := h.uc.Get(c.Context(), actorID, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// SetActive toggles a posting in or out of the matching pool.
// @Summary Activate/deactivate posting
// @Tags    postings
// @Accept  json
// @Param   id path string true "Posting ID (UUID)"
// @Param   input body setActiveRequest true "activity flag"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /postings/{id}/active [put]
func (h *JobPostingHandler) SetActive(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "UUID invalide")
	}
	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	if err := h.uc.SetActive(c.Context(), actorID, id, req.IsActive); err != nil {
		return presenter.FromError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete removes a posting the caller owns.
// @Summary Delete posting
// @Tags    postings
// @Param   id path string true "Posting ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /postings/{id} [delete]
func (h *JobPostingHandler) Delete(c *fiber.Ctx) error {
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
