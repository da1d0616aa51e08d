package routes

import (
	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SiswaRoutes(r *gin.Engine, siswa service.SiswaService, logbook service.LogbookService) {

	s := r.Group("/api/v1/siswa")
	s.Use(middleware.AuthMiddleware())
	{
		// Katalog DUDI + pendaftaran mandiri.
		s.GET("/dudi", siswa.GetDudiCatalog)
		s.POST("/magang/daftar", siswa.DaftarMagang)

		// Jurnal harian.
		s.GET("/logbook", logbook.GetJurnalList)
		s.GET("/logbook/:id", logbook.GetJurnalDetail)
		s.POST("/logbook", logbook.CreateJurnal)
		s.PUT("/logbook/:id", logbook.UpdateJurnal)
		s.DELETE("/logbook/:id", logbook.DeleteJurnal)

		// Profil + dashboard.
		s.GET("/profile", siswa.GetProfile)
		s.GET("/dashboard", siswa.GetDashboard)
	}
}
