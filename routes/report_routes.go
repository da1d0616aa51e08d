package routes

import (
	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(r *gin.Engine, s service.ReportService) {

	dashboard := r.Group("/api/v1/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", s.GetAdminDashboard)
	}
}
