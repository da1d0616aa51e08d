package routes

import (
	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SettingsRoutes(r *gin.Engine, s service.SettingsService) {

	// GET terbuka: dipakai halaman login untuk menampilkan identitas sekolah.
	r.GET("/api/v1/school-settings", s.GetSettings)

	settings := r.Group("/api/v1/school-settings")
	settings.Use(middleware.AuthMiddleware())
	{
		settings.PUT("", s.UpdateSettings)
		settings.POST("/logo", s.UploadLogo)
		settings.DELETE("/logo", s.RemoveLogo)
	}
}
