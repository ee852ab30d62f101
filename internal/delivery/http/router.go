package http

import (
	"strings"

	"github.com/doublemate/doublemate-backend/internal/delivery/http/handler"
	"github.com/doublemate/doublemate-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	onboardingHandler *handler.OnboardingHandler
	matchHandler      *handler.MatchHandler
	chatHandler       *handler.ChatHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	onboardingHandler *handler.OnboardingHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		onboardingHandler: onboardingHandler,
		matchHandler:      matchHandler,
		chatHandler:       chatHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "notblank" rejects whitespace-only strings that pass "required".
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/token", r.authHandler.IssueToken)

		// Onboarding happens before a profile (and thus a token) exists.
		onboarding := v1.Group("/onboarding")
		{
			onboarding.POST("/chat", r.onboardingHandler.Advance)
			onboarding.POST("/complete", r.onboardingHandler.Complete)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.GET("/:user_id", r.profileHandler.GetProfileByID)
			}

			matches := protected.Group("/matches")
			{
				matches.POST("/daily", r.matchHandler.GetDailyMatch)
				matches.POST("/respond", r.matchHandler.RespondToMatch)
				matches.GET("", r.matchHandler.ListMatches)
			}

			chat := protected.Group("/chat")
			{
				chat.GET("/messages", r.chatHandler.ListMessages)
				chat.POST("/messages", r.chatHandler.SendMessage)
			}
		}
	}

	return router
}
