package routes

import (
	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func DudiRoutes(r *gin.Engine, s service.DudiService) {

	dudi := r.Group("/api/v1/dudi")
	dudi.Use(middleware.AuthMiddleware())
	{
		dudi.GET("", s.GetAllDudi)
		dudi.GET("/:id", s.GetDudiDetail)
		dudi.POST("", s.CreateDudi)
		dudi.PUT("/:id", s.UpdateDudi)
		dudi.DELETE("/:id", s.DeleteDudi)
	}
}
