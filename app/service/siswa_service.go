package service

import (
	"errors"
	"net/http"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SiswaService menangani halaman siswa: katalog DUDI, pendaftaran magang
// mandiri, profil, dan dashboard.
type SiswaService interface {
	GetDudiCatalog(ctx *gin.Context)
	DaftarMagang(ctx *gin.Context)
	GetProfile(ctx *gin.Context)
	GetDashboard(ctx *gin.Context)
}

type siswaService struct {
	userRepo   repository.UserRepository
	dudiRepo   repository.DudiRepository
	magangRepo repository.MagangRepository
	reportRepo repository.ReportRepository
	activity   repository.ActivityRepository
}

func NewSiswaService(
	userRepo repository.UserRepository,
	dudiRepo repository.DudiRepository,
	magangRepo repository.MagangRepository,
	reportRepo repository.ReportRepository,
	activity repository.ActivityRepository,
) SiswaService {
	return &siswaService{
		userRepo:   userRepo,
		dudiRepo:   dudiRepo,
		magangRepo: magangRepo,
		reportRepo: reportRepo,
		activity:   activity,
	}
}

// siswaLogin mengambil profil siswa di balik user yang login.
func (s *siswaService) siswaLogin(ctx *gin.Context) (*model.Siswa, bool) {
	siswa, err := s.userRepo.FindSiswaByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil siswa tidak ditemukan"))
		return nil, false
	}
	return siswa, true
}

// GetDudiCatalog: katalog DUDI aktif, ditandai mana yang sudah didaftari
// siswa yang login.
func (s *siswaService) GetDudiCatalog(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}
	siswa, ok := s.siswaLogin(ctx)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(ctx, 12)

	rows, total, err := s.dudiRepo.FindAktifUntukSiswa(siswa.ID, ctx.Query("search"), limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data DUDI"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseList(rows, nil, &total))
}

// DaftarMagang: pendaftaran mandiri siswa ke sebuah DUDI.
// Kuota, duplikasi, dan status DUDI dicek dalam satu transaksi.
func (s *siswaService) DaftarMagang(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}
	siswa, ok := s.siswaLogin(ctx)
	if !ok {
		return
	}

	var input struct {
		DudiID uuid.UUID `json:"dudi_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	m, err := s.magangRepo.Daftarkan(siswa.ID, input.DudiID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDudiTidakAktif):
			// DUDI tidak ada / tidak aktif diperlakukan sebagai not-found.
			ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed(err.Error()))
		case errors.Is(err, model.ErrBatasPendaftaran),
			errors.Is(err, model.ErrSudahTerdaftar),
			errors.Is(err, model.ErrGuruBelumAda):
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
		default:
			ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mendaftar magang"))
		}
		return
	}

	catatAktivitas(s.activity, ctx, "create", "magang", m.ID.String(), nil)
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Pendaftaran magang berhasil, menunggu persetujuan", m))
}

// GetProfile: data diri + magang utama + pemakaian kuota pendaftaran.
func (s *siswaService) GetProfile(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}

	p, err := s.reportRepo.SiswaProfil(currentUserID(ctx))
	if err != nil {
		if repository.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil siswa tidak ditemukan"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil profil"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil profil", p))
}

// GetDashboard: magang berjalan + jurnal terakhir + rekap status jurnal.
func (s *siswaService) GetDashboard(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}
	siswa, ok := s.siswaLogin(ctx)
	if !ok {
		return
	}

	d, err := s.reportRepo.SiswaDashboard(siswa.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data dashboard"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data dashboard", d))
}
