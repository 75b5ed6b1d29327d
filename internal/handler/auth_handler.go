package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"referly/invitehub/internal/service"
	"referly/invitehub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterWithInviteRequest struct {
	InviteCode string `json:"inviteCode"`
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RegisterWithInvite handles POST /auth/local/register-with-invite.
func (h *AuthHandler) RegisterWithInvite(c *gin.Context) {
	var req RegisterWithInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.authService.RegisterWithInvite(
		c.Request.Context(),
		req.InviteCode,
		req.Username,
		req.Email,
		req.Password,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteCodeRequired),
			errors.Is(err, service.ErrInviteCodeInvalid),
			errors.Is(err, service.ErrValidation):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUserAlreadyExists):
			response.Conflict(c, err.Error())
		case errors.Is(err, service.ErrPartialRegistration),
			errors.Is(err, service.ErrCodeAssignmentExhausted):
			response.InternalError(c, err.Error())
		default:
			response.InternalError(c, "registration failed")
		}
		return
	}

	response.Success(c, result)
}

// Login handles POST /auth/local.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "invalid credentials")
		case errors.Is(err, service.ErrUserDisabled):
			response.Forbidden(c, "user is disabled")
		default:
			response.InternalError(c, "login failed")
		}
		return
	}

	response.Success(c, result)
}
