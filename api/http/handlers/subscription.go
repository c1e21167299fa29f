package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/subscription"
)

type SubscriptionHandler struct {
	uc subscription.UseCase
}

func NewSubscriptionHandler(uc subscription.UseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

type subscribeRequest struct {
	Tier          string `json:"tier"`
	PaymentMethod string `json:"paymentMethod"`
}

// Subscribe applies a tier purchase, extension or change for the caller.
// @Summary Subscribe to a tier
// @Tags    subscriptions
// @Accept  json
// @Produce json
// @Param   input body subscribeRequest true "subscription payload"
// @Security BearerAuth
// @Success 200 {object} subscription.Subscription
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	sub, err := h.uc.Subscribe(c.Context(), actorID, subscription.Tier(req.Tier), req.PaymentMethod)
	if err != nil {
		// Payment-adjacent path: surface the underlying error detail on 500s.
		return presenter.FromErrorVerbose(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sub)
}

// Current returns the caller's subscription, if any.
// @Summary Current subscription
// @Tags    subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} subscription.Subscription
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /subscriptions/current [get]
func (h *SubscriptionHandler) Current(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	sub, err := h.uc.Current(c.Context(), actorID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, sub)
}
