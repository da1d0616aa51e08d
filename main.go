package main

import (
	"log"
	"os"

	"magang-portal-backend/app/repository"
	"magang-portal-backend/app/service"
	"magang-portal-backend/database"
	"magang-portal-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA (ADMIN + GURU + SISWA + SETTINGS)
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// REPOSITORIES
	// =================================================================
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	adminRepo := repository.NewUserAdminRepository(dbConn.Postgres)
	dudiRepo := repository.NewDudiRepository(dbConn.Postgres)
	magangRepo := repository.NewMagangRepository(dbConn.Postgres)
	logbookRepo := repository.NewLogbookRepository(dbConn.Postgres)
	settingsRepo := repository.NewSettingsRepository(dbConn.Postgres)
	reportRepo := repository.NewReportRepository(dbConn.Postgres)
	activityRepo := repository.NewActivityRepository(dbConn.Mongo)

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(userRepo)
	adminService := service.NewAdminService(adminRepo, activityRepo)
	dudiService := service.NewDudiService(dudiRepo, activityRepo)
	magangService := service.NewMagangService(magangRepo, dudiRepo, userRepo, activityRepo)
	logbookService := service.NewLogbookService(logbookRepo, userRepo, activityRepo)
	guruService := service.NewGuruService(userRepo, dudiRepo, reportRepo)
	siswaService := service.NewSiswaService(userRepo, dudiRepo, magangRepo, reportRepo, activityRepo)
	settingsService := service.NewSettingsService(settingsRepo, activityRepo)
	reportService := service.NewReportService(reportRepo)

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()

	// Lampiran jurnal + logo sekolah disajikan statis.
	r.Static("/uploads", "./public/uploads")

	// Auth
	authHandler := routes.NewAuthHandler(authService)
	authHandler.SetupAuthRoutes(r)

	// Admin: manajemen akun + jejak aktivitas
	routes.AdminRoutes(r, adminService)

	// DUDI (admin + guru)
	routes.DudiRoutes(r, dudiService)

	// Guru: magang bimbingan, verifikasi jurnal, dashboard
	routes.GuruRoutes(r, magangService, logbookService, guruService)

	// Siswa: katalog DUDI, pendaftaran, jurnal, profil, dashboard
	routes.SiswaRoutes(r, siswaService, logbookService)

	// Pengaturan sekolah
	routes.SettingsRoutes(r, settingsService)

	// Dashboard admin
	routes.ReportRoutes(r, reportService)

	// Root endpoint (optional)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Portal Magang API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running at http://localhost:" + port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
