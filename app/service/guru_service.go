package service

import (
	"net/http"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
)

// GuruService menangani halaman pendukung guru: daftar siswa (untuk form
// penempatan), DUDI partner, dan dashboard.
type GuruService interface {
	GetSiswaList(ctx *gin.Context)
	GetDudiList(ctx *gin.Context)
	GetDashboard(ctx *gin.Context)
}

type guruService struct {
	userRepo   repository.UserRepository
	dudiRepo   repository.DudiRepository
	reportRepo repository.ReportRepository
}

func NewGuruService(
	userRepo repository.UserRepository,
	dudiRepo repository.DudiRepository,
	reportRepo repository.ReportRepository,
) GuruService {
	return &guruService{userRepo: userRepo, dudiRepo: dudiRepo, reportRepo: reportRepo}
}

// GetSiswaList: seluruh siswa, untuk dropdown penempatan magang.
func (s *guruService) GetSiswaList(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}

	siswa, err := s.userRepo.FindAllSiswa()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data siswa"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data siswa", siswa))
}

// GetDudiList: DUDI yang pernah menjadi partner bimbingan guru ini.
func (s *guruService) GetDudiList(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}

	guru, err := s.userRepo.FindGuruByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil guru tidak ditemukan"))
		return
	}

	limit, offset := parseLimitOffset(ctx, 10)

	rows, err := s.dudiRepo.FindByGuru(guru.ID, ctx.Query("search"), limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data DUDI"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data DUDI", rows))
}

// GetDashboard: statistik bimbingan + pendaftaran dan partner terbaru.
func (s *guruService) GetDashboard(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}

	guru, err := s.userRepo.FindGuruByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil guru tidak ditemukan"))
		return
	}

	d, err := s.reportRepo.GuruDashboard(guru.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data dashboard"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data dashboard", d))
}
