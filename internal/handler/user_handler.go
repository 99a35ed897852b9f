package handler

import (
	"net/http"

	"socialmedia/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetMe godoc
// @Summary      Get current user's profile
// @Description  Retrieves the profile of the authenticated user with roles, posts, subscriptions, subscribers and received messages.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	profile, err := h.users.Me(c.Request.Context(), me)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildProfile(profile))
}

// GetFriends godoc
// @Summary      Get current user's friends
// @Description  Lists the users whose subscription to the authenticated user is accepted.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   AuthorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/friends [get]
func (h *UserHandler) GetFriends(c *gin.Context) {
	me, _ := auth.CurrentUser(c)

	friends, err := h.users.Friends(c.Request.Context(), me)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]AuthorResponse, 0, len(friends))
	for i := range friends {
		resp = append(resp, *buildAuthor(&friends[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary      List all users
// @Description  Lists every registered user with their roles. Requires ROLE_ADMIN.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   AdminUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, AdminUserResponse{ID: u.ID, Username: u.Username, Email: u.Email, Roles: buildRoles(u.Roles)})
	}
	c.JSON(http.StatusOK, resp)
}

// Welcome godoc
// @Summary      Greet the authenticated user
// @Description  Confirms that the bearer token is accepted.
// @Tags         users
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      401  {object}  ErrorResponse
// @Router       /welcome [get]
func (h *UserHandler) Welcome(c *gin.Context) {
	me, _ := auth.CurrentUser(c)
	c.String(http.StatusOK, "%s successfully signed in and has access to the API!", me.Username)
}
