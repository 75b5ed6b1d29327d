package handler

import (
	"github.com/gin-gonic/gin"

	"referly/invitehub/internal/service"
	"referly/invitehub/pkg/response"
)

type InviteHandler struct {
	relations service.RelationService
}

func NewInviteHandler(relations service.RelationService) *InviteHandler {
	return &InviteHandler{relations: relations}
}

// GetInviter returns the user who invited the caller, or null for a
// self-serve signup.
func (h *InviteHandler) GetInviter(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	inviter, err := h.relations.GetInviter(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to look up inviter")
		return
	}
	if inviter == nil {
		response.Success(c, gin.H{"inviter": nil})
		return
	}
	response.Success(c, gin.H{"inviter": inviter})
}

// GetInvitees returns the users the caller invited, oldest first.
func (h *InviteHandler) GetInvitees(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	invitees, err := h.relations.GetInvitees(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to list invitees")
		return
	}
	response.Success(c, gin.H{"invitees": invitees})
}

// GetInviteStats returns the caller's invite count.
func (h *InviteHandler) GetInviteStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	stats, err := h.relations.GetInviteStats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to compute invite stats")
		return
	}
	response.Success(c, stats)
}
