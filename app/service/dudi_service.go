package service

import (
	"errors"
	"net/http"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
)

// DudiService menangani CRUD perusahaan mitra.
// Listing bisa diakses admin dan guru; tulis hanya admin.
type DudiService interface {
	GetAllDudi(ctx *gin.Context)
	GetDudiDetail(ctx *gin.Context)
	CreateDudi(ctx *gin.Context)
	UpdateDudi(ctx *gin.Context)
	DeleteDudi(ctx *gin.Context)
}

type dudiService struct {
	repo     repository.DudiRepository
	activity repository.ActivityRepository
}

func NewDudiService(repo repository.DudiRepository, activity repository.ActivityRepository) DudiService {
	return &dudiService{repo: repo, activity: activity}
}

type dudiInput struct {
	NamaPerusahaan  string `json:"nama_perusahaan" binding:"required"`
	Alamat          string `json:"alamat" binding:"required"`
	Telepon         string `json:"telepon" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	PenanggungJawab string `json:"penanggung_jawab" binding:"required"`
	Status          string `json:"status" binding:"omitempty,oneof=aktif nonaktif pending"`
}

// GetAllDudi: daftar DUDI + blok statistik.
func (s *dudiService) GetAllDudi(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin, model.RoleGuru) {
		return
	}

	limit, offset := parseLimitOffset(ctx, 10)

	rows, err := s.repo.FindAll(ctx.Query("search"), limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data DUDI"))
		return
	}

	stats, err := s.repo.Stats()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data DUDI"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseList(rows, stats, &stats.TotalDudi))
}

// GetDudiDetail: 1 DUDI + jumlah siswa magang aktif di sana.
func (s *dudiService) GetDudiDetail(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin, model.RoleGuru) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	d, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("DUDI tidak ditemukan"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail DUDI", d))
}

// CreateDudi: tambah perusahaan mitra. Nama perusahaan harus unik.
func (s *dudiService) CreateDudi(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	var input dudiInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Semua field wajib diisi"))
		return
	}
	if input.Status == "" {
		input.Status = model.DudiAktif
	}

	d := model.Dudi{
		NamaPerusahaan:  input.NamaPerusahaan,
		Alamat:          input.Alamat,
		Telepon:         input.Telepon,
		Email:           input.Email,
		PenanggungJawab: input.PenanggungJawab,
		Status:          input.Status,
	}
	if err := s.repo.Create(&d); err != nil {
		if errors.Is(err, model.ErrNamaPerusahaan) {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menambahkan DUDI"))
		return
	}

	catatAktivitas(s.activity, ctx, "create", "dudi", d.ID.String(), &d.NamaPerusahaan)
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("DUDI berhasil ditambahkan", d))
}

// UpdateDudi: ubah data perusahaan. Field kosong tidak mengubah nilai lama.
func (s *dudiService) UpdateDudi(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ada, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("DUDI tidak ditemukan"))
		return
	}

	var input struct {
		NamaPerusahaan  string `json:"nama_perusahaan"`
		Alamat          string `json:"alamat"`
		Telepon         string `json:"telepon"`
		Email           string `json:"email" binding:"omitempty,email"`
		PenanggungJawab string `json:"penanggung_jawab"`
		Status          string `json:"status" binding:"omitempty,oneof=aktif nonaktif pending"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	d := ada.Dudi
	if input.NamaPerusahaan != "" {
		d.NamaPerusahaan = input.NamaPerusahaan
	}
	if input.Alamat != "" {
		d.Alamat = input.Alamat
	}
	if input.Telepon != "" {
		d.Telepon = input.Telepon
	}
	if input.Email != "" {
		d.Email = input.Email
	}
	if input.PenanggungJawab != "" {
		d.PenanggungJawab = input.PenanggungJawab
	}
	if input.Status != "" {
		d.Status = input.Status
	}

	if err := s.repo.Update(&d); err != nil {
		if errors.Is(err, model.ErrNamaPerusahaan) {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal memperbarui DUDI"))
		return
	}

	catatAktivitas(s.activity, ctx, "update", "dudi", d.ID.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("DUDI berhasil diperbarui", d))
}

// DeleteDudi: hapus perusahaan. Ditolak selama masih ada magang aktif.
func (s *dudiService) DeleteDudi(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := s.repo.Delete(id); err != nil {
		switch {
		case errors.Is(err, model.ErrDudiMasihAktif):
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
		case repository.IsNotFound(err):
			ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("DUDI tidak ditemukan"))
		default:
			ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menghapus DUDI"))
		}
		return
	}

	catatAktivitas(s.activity, ctx, "delete", "dudi", id.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("DUDI berhasil dihapus", nil))
}
