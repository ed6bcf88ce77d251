package routes

import (
	"github.com/eventhub-id/eventhub-api/config"
	"github.com/eventhub-id/eventhub-api/controllers"
	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps controllers.Dependencies, limits config.RateLimitConfig) *gin.Engine {
	utils.RegisterValidators()
	controllers.Setup(deps)

	router := gin.New()
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.ErrorHandler())

	router.GET("/health", controllers.Health)

	initUserRoutes(router, deps, limits)
	initEventRoutes(router, deps)
	initAdminRoutes(router, deps)

	return router
}
