package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"referly/invitehub/internal/service"
	"referly/invitehub/pkg/response"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "user no longer exists")
			return
		}
		response.InternalError(c, "failed to load user")
		return
	}

	response.Success(c, user)
}
