package service

import (
	"errors"
	"net/http"
	"time"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MagangService menangani pengelolaan penempatan magang oleh guru
// pembimbing. Semua operasi dibatasi ke magang milik guru yang login.
type MagangService interface {
	GetMagangList(ctx *gin.Context)
	CreateMagang(ctx *gin.Context)
	UpdateMagang(ctx *gin.Context)
	DeleteMagang(ctx *gin.Context)
}

type magangService struct {
	repo     repository.MagangRepository
	dudiRepo repository.DudiRepository
	userRepo repository.UserRepository
	activity repository.ActivityRepository
}

func NewMagangService(
	repo repository.MagangRepository,
	dudiRepo repository.DudiRepository,
	userRepo repository.UserRepository,
	activity repository.ActivityRepository,
) MagangService {
	return &magangService{repo: repo, dudiRepo: dudiRepo, userRepo: userRepo, activity: activity}
}

// guruLogin mengambil profil guru di balik user yang login.
// Jawab 404 jika akun guru belum punya profil.
func (s *magangService) guruLogin(ctx *gin.Context) (*model.Guru, bool) {
	guru, err := s.userRepo.FindGuruByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil guru tidak ditemukan"))
		return nil, false
	}
	return guru, true
}

// parseTanggal menerima format YYYY-MM-DD.
func parseTanggal(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetMagangList: daftar magang bimbingan + blok statistik.
func (s *magangService) GetMagangList(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}
	guru, ok := s.guruLogin(ctx)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(ctx, 10)

	rows, err := s.repo.FindByGuru(guru.ID, ctx.Query("search"), ctx.Query("status"), limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data magang"))
		return
	}

	stats, err := s.repo.StatsByGuru(guru.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data magang"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseList(rows, stats, &stats.TotalSiswa))
}

// CreateMagang: guru menempatkan siswa ke DUDI.
// Syarat: DUDI aktif dan siswa belum punya magang berjalan di bawah guru ini.
func (s *magangService) CreateMagang(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}
	guru, ok := s.guruLogin(ctx)
	if !ok {
		return
	}

	var input struct {
		SiswaID        uuid.UUID `json:"siswa_id" binding:"required"`
		DudiID         uuid.UUID `json:"dudi_id" binding:"required"`
		Status         string    `json:"status" binding:"omitempty,oneof=pending diterima ditolak berlangsung selesai dibatalkan"`
		TanggalMulai   string    `json:"tanggal_mulai"`
		TanggalSelesai string    `json:"tanggal_selesai"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}
	if input.Status == "" {
		input.Status = model.MagangBerlangsung
	}

	dudi, err := s.dudiRepo.FindByID(input.DudiID)
	if err != nil || dudi.Status != model.DudiAktif {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(model.ErrDudiTidakAktif.Error()))
		return
	}

	aktif, err := s.repo.AdaMagangAktifDiGuru(input.SiswaID, guru.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan data magang"))
		return
	}
	if aktif {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(model.ErrSiswaMagangAktif.Error()))
		return
	}

	mulai, err := parseTanggal(input.TanggalMulai)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format tanggal tidak valid"))
		return
	}
	selesai, err := parseTanggal(input.TanggalSelesai)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format tanggal tidak valid"))
		return
	}

	m := model.Magang{
		SiswaID:        input.SiswaID,
		DudiID:         input.DudiID,
		GuruID:         guru.ID,
		Status:         input.Status,
		TanggalMulai:   mulai,
		TanggalSelesai: selesai,
	}
	if err := s.repo.Create(&m); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan data magang"))
		return
	}

	catatAktivitas(s.activity, ctx, "create", "magang", m.ID.String(), nil)
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Data magang berhasil ditambahkan", m))
}

// UpdateMagang: ubah status/tanggal/nilai. Nilai akhir dipaksa NULL kecuali
// status akhirnya selesai.
func (s *magangService) UpdateMagang(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}
	guru, ok := s.guruLogin(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	m, err := s.repo.FindOwned(id, guru.ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Data magang tidak ditemukan"))
		return
	}

	var input struct {
		Status         string   `json:"status" binding:"omitempty,oneof=pending diterima ditolak berlangsung selesai dibatalkan"`
		TanggalMulai   string   `json:"tanggal_mulai"`
		TanggalSelesai string   `json:"tanggal_selesai"`
		NilaiAkhir     *float64 `json:"nilai_akhir" binding:"omitempty,gte=0,lte=100"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	if input.Status != "" {
		m.Status = input.Status
	}
	if input.TanggalMulai != "" {
		mulai, err := parseTanggal(input.TanggalMulai)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format tanggal tidak valid"))
			return
		}
		m.TanggalMulai = mulai
	}
	if input.TanggalSelesai != "" {
		selesai, err := parseTanggal(input.TanggalSelesai)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format tanggal tidak valid"))
			return
		}
		m.TanggalSelesai = selesai
	}
	if input.NilaiAkhir != nil {
		m.NilaiAkhir = input.NilaiAkhir
	}
	m.NilaiAkhir = model.NormalisasiNilaiAkhir(m.Status, m.NilaiAkhir)

	if err := s.repo.Update(m); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal memperbarui data magang"))
		return
	}

	catatAktivitas(s.activity, ctx, "update", "magang", m.ID.String(), &m.Status)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data magang berhasil diperbarui", m))
}

// DeleteMagang: hapus penempatan. Ditolak jika sudah pernah ada jurnal,
// termasuk jurnal yang sudah dihapus siswa.
func (s *magangService) DeleteMagang(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}
	guru, ok := s.guruLogin(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := s.repo.FindOwned(id, guru.ID); err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Data magang tidak ditemukan"))
		return
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, model.ErrMagangAdaLogbook) {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menghapus data magang"))
		return
	}

	catatAktivitas(s.activity, ctx, "delete", "magang", id.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Data magang berhasil dihapus", nil))
}
