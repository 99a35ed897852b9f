package handler

import (
	"net/http"

	"socialmedia/backend/internal/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new user with the ROLE_USER role and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), input.Email, input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		ID:       result.User.ID,
		Email:    result.User.Email,
		Username: result.User.Username,
		Token:    result.Token,
	})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email or username and password, and returns a new token.
// @Description  The response echoes the identifier that was used.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or wrong password"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), input.Email, input.Username, input.Password)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	resp := AuthResponse{ID: result.User.ID, Token: result.Token}
	if input.Email != "" {
		resp.Email = input.Email
	} else {
		resp.Username = input.Username
	}
	c.JSON(http.StatusOK, resp)
}
