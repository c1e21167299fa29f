package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/auth"
)

// ProfileHandler reads and updates the fields the matcher scores on.
type ProfileHandler struct {
	users auth.UserRepository
}

func NewProfileHandler(users auth.UserRepository) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Me returns the caller's profile.
// @Summary My profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /profile [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	u, err := h.users.GetByID(c.Context(), actorID)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "profil introuvable")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"id":              u.ID,
		"email":           u.Email,
		"role":            u.Role,
		"skills":          u.Skills,
		"domains":         u.Domains,
		"experienceYears": u.ExperienceYears,
		"credits":         u.Credits,
		"createdAt":       u.CreatedAt,
	})
}

type updateProfileRequest struct {
	Skills          []string `json:"skills"`
	Domains         []string `json:"domains"`
	ExperienceYears int      `json:"experienceYears"`
}

// Update replaces the caller's skills, domains and experience.
// @Summary Update profile
// @Tags    profile
// @Accept  json
// @Param   input body updateProfileRequest true "profile fields"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	if req.ExperienceYears < 0 {
		return presenter.Error(c, http.StatusBadRequest, "experienceYears doit être positif")
	}
	if err := h.users.UpdateProfile(c.Context(), actorID, req.Skills, req.Domains, req.ExperienceYears); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "impossible de mettre à jour le profil")
	}
	return c.SendStatus(http.StatusNoContent)
}
