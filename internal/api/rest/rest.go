package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/campuschain/access-layer/internal/api/middleware"
	"github.com/campuschain/access-layer/internal/ratelimit"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authCfg)
	throttled := middleware.RateLimit(limiter)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Access decisions and progress (requires authentication)
		v1.GET("/access/:kind/:id", auth, handler.CheckAccess)
		v1.GET("/courses/:slug/:id/progress", auth, handler.GetProgress)

		// Sponsored gated actions (requires authentication, write limited)
		v1.POST("/actions", auth, throttled, handler.PerformAction)
		v1.GET("/actions/:id", auth, handler.GetAction)

		// Contest entries (listing is public read access)
		v1.GET("/contests/:id/submissions", handler.ListSubmissions)
		v1.POST("/contests/:id/submissions", auth, throttled, handler.CreateSubmission)

		// Contest votes (requires authentication, write limited)
		v1.POST("/contests/:id/votes", auth, throttled, handler.CastVote)
		v1.DELETE("/contests/:id/votes", auth, throttled, handler.RemoveVote)

		// Admin enrollment grants (requires authentication)
		v1.POST("/admin/enrollments", auth, handler.CreateAdminEnrollment)
	}
}
