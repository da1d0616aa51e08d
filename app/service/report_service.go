package service

import (
	"net/http"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportService menangani dashboard admin.
type ReportService interface {
	GetAdminDashboard(ctx *gin.Context)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo}
}

// GetAdminDashboard: statistik sekolah + pendaftaran, DUDI, dan jurnal terbaru.
func (s *reportService) GetAdminDashboard(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	d, err := s.repo.AdminDashboard()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data dashboard"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data dashboard", d))
}
