package routes

import (
	"github.com/eventhub-id/eventhub-api/controllers"
	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/models"
	"github.com/gin-gonic/gin"
)

// initEventRoutes initializes event creation and discovery routes
func initEventRoutes(router *gin.Engine, deps controllers.Dependencies) {
	router.POST("/create-event",
		middleware.AuthMiddleware(deps.DB),
		middleware.RoleMiddleware(models.RoleAdmin, models.RoleEventOrganizer),
		middleware.SingleImageUpload("image"),
		controllers.CreateEvent,
	)

	router.GET("/explore-events", controllers.ExploreEvents)
	router.GET("/list-events", controllers.ListEvents)
	router.GET("/event-details/:id", controllers.EventDetails)
}
