package routes

import (
	"github.com/eventhub-id/eventhub-api/config"
	"github.com/eventhub-id/eventhub-api/controllers"
	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/services"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes auth, referral and dashboard routes
func initUserRoutes(router *gin.Engine, deps controllers.Dependencies, limits config.RateLimitConfig) {
	authLimit := middleware.RateLimit(deps.Redis, "auth", limits.AuthLimit, limits.AuthWindow)

	auth := router.Group("/auth")
	{
		auth.POST("/register", authLimit, controllers.Register)
		auth.GET("/verify-email", controllers.VerifyEmail)
		auth.POST("/resend-verification", authLimit, controllers.ResendVerification)
		auth.POST("/login", authLimit, controllers.Login)
		auth.GET("/session-login", middleware.AuthMiddleware(deps.DB), controllers.SessionLogin)

		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	referral := router.Group("/referral")
	{
		referral.GET("/validate/:referralCode",
			middleware.RateLimit(deps.Redis, "referral-validate", limits.ReferralLimit, limits.ReferralWindow),
			controllers.ValidateReferralCode,
		)

		protected := referral.Group("")
		protected.Use(middleware.AuthMiddleware(deps.DB))
		{
			protected.GET("/stats", controllers.GetReferralStats)
			protected.POST("/redeem",
				middleware.CheckMinimumPoints(services.MinRedeemPoints),
				middleware.RateLimit(deps.Redis, "referral-redeem", limits.RedeemLimit, limits.RedeemWindow),
				middleware.LogReferralActivity("redeem_points"),
				controllers.RedeemPoints,
			)
		}
	}

	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(deps.DB))
	{
		dashboard.GET("/my-account", controllers.MyAccount)
	}
}
