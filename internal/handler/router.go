package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"referly/invitehub/internal/config"
	"referly/invitehub/internal/handler/middleware"
	jwtpkg "referly/invitehub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	inviteHandler *InviteHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/local", authHandler.Login)
		auth.POST("/local/register-with-invite", authHandler.RegisterWithInvite)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.GET("/me", userHandler.Me)

		protected.GET("/invites/inviter", inviteHandler.GetInviter)
		protected.GET("/invites/invitees", inviteHandler.GetInvitees)
		protected.GET("/invites/stats", inviteHandler.GetInviteStats)
	}

	return r
}
