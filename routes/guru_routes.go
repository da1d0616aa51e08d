package routes

import (
	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"

	"github.com/gin-gonic/gin"
)

func GuruRoutes(r *gin.Engine, magang service.MagangService, logbook service.LogbookService, guru service.GuruService) {

	g := r.Group("/api/v1/guru")
	g.Use(middleware.AuthMiddleware())
	{
		// Penempatan magang siswa bimbingan.
		g.GET("/magang", magang.GetMagangList)
		g.POST("/magang", magang.CreateMagang)
		g.PUT("/magang/:id", magang.UpdateMagang)
		g.DELETE("/magang/:id", magang.DeleteMagang)

		// Verifikasi jurnal.
		g.GET("/logbook", logbook.GetJurnalGuru)
		g.PUT("/logbook/:id/verifikasi", logbook.VerifikasiJurnal)

		// Data pendukung + dashboard.
		g.GET("/siswa", guru.GetSiswaList)
		g.GET("/dudi", guru.GetDudiList)
		g.GET("/dashboard/stats", guru.GetDashboard)
	}
}
