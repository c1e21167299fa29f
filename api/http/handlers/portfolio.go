package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/portfolio"
)

type PortfolioHandler struct {
	uc portfolio.UseCase
}

func NewPortfolioHandler(uc portfolio.UseCase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

type savePortfolioRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Save creates or updates one of the caller's portfolios.
// @Summary Save portfolio
// @Tags    portfolios
// @Accept  json
// @Produce json
// @Param   input body savePortfolioRequest true "portfolio payload"
// @Security BearerAuth
// @Success 200 {object} portfolio.Portfolio
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /portfolios [put]
func (h *PortfolioHandler) Save(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	var req savePortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	p := portfolio.Portfolio{Title: req.Title, Summary: req.Summary, URL: req.URL}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "UUID invalide")
		}
		p.ID = id
	}
	saved, err := h.uc.Save(c.Context(), actorID, p)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, saved)
}

// List returns the caller's portfolios.
// @Summary List my portfolios
// @Tags    portfolios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} portfolio.Portfolio
// @Router  /portfolios [get]
func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	ps, err := h.uc.ListMine(c.Context(), actorID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if ps == nil {
		ps = []portfolio.Portfolio{}
	}
	return presenter.JSON(c, http.StatusOK, ps)
}
