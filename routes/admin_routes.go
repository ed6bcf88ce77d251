package routes

import (
	"github.com/eventhub-id/eventhub-api/controllers"
	"github.com/eventhub-id/eventhub-api/middleware"
	"github.com/eventhub-id/eventhub-api/models"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.Engine, deps controllers.Dependencies) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.DB), middleware.RoleMiddleware(models.RoleAdmin))
	{
		referrals := admin.Group("/referrals")
		{
			referrals.GET("", controllers.GetAllReferrals)
			referrals.GET("/report/xlsx", controllers.DownloadReferralReportExcel)
			referrals.GET("/report/pdf", controllers.DownloadReferralReportPDF)
		}
	}
}
