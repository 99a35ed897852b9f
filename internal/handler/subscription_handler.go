package handler

import (
	"net/http"

	"socialmedia/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subs SubscriptionService
}

func NewSubscriptionHandler(subs SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

// ChangeSubscription godoc
// @Summary      Subscribe to or unsubscribe from a user
// @Description  Toggles the current user's subscription to the target user.
// @Description  Subscribing to a user who already subscribed to you makes you friends; unsubscribing from a friend leaves their subscription pending.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Target username"
// @Success      202       {object}  SubscriptionStatusResponse
// @Failure      400       {object}  ErrorResponse "User not found"
// @Failure      401       {object}  ErrorResponse
// @Router       /subscriptions/change-subscription/{username} [post]
func (h *SubscriptionHandler) ChangeSubscription(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	status, err := h.subs.ChangeSubscription(c.Request.Context(), me, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SubscriptionStatusResponse{SubscriptionStatus: status})
}

// AcceptSubscription godoc
// @Summary      Accept a pending subscription
// @Description  Accepts the pending subscription of the given user and subscribes back, making both users friends.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Subscriber username"
// @Success      202       {object}  SubscriptionStatusResponse
// @Failure      400       {object}  ErrorResponse "User or subscription not found"
// @Failure      401       {object}  ErrorResponse
// @Router       /subscriptions/accept/{username} [post]
func (h *SubscriptionHandler) AcceptSubscription(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	status, err := h.subs.AcceptSubscription(c.Request.Context(), me, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SubscriptionStatusResponse{SubscriptionStatus: status})
}
