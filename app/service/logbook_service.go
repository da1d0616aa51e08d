package service

import (
	"net/http"
	"strconv"
	"time"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LogbookService menangani jurnal harian: sisi siswa (tulis) dan sisi guru
// (verifikasi).
type LogbookService interface {
	GetJurnalList(ctx *gin.Context)
	GetJurnalDetail(ctx *gin.Context)
	CreateJurnal(ctx *gin.Context)
	UpdateJurnal(ctx *gin.Context)
	DeleteJurnal(ctx *gin.Context)
	GetJurnalGuru(ctx *gin.Context)
	VerifikasiJurnal(ctx *gin.Context)
}

type logbookService struct {
	repo     repository.LogbookRepository
	userRepo repository.UserRepository
	activity repository.ActivityRepository
}

func NewLogbookService(
	repo repository.LogbookRepository,
	userRepo repository.UserRepository,
	activity repository.ActivityRepository,
) LogbookService {
	return &logbookService{repo: repo, userRepo: userRepo, activity: activity}
}

func (s *logbookService) siswaLogin(ctx *gin.Context) (*model.Siswa, bool) {
	siswa, err := s.userRepo.FindSiswaByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil siswa tidak ditemukan"))
		return nil, false
	}
	return siswa, true
}

// GetJurnalList: jurnal milik siswa yang login, filter status/bulan/tahun.
func (s *logbookService) GetJurnalList(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}
	siswa, ok := s.siswaLogin(ctx)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(ctx, 10)
	bulan, _ := strconv.Atoi(ctx.Query("bulan"))
	tahun, _ := strconv.Atoi(ctx.Query("tahun"))

	rows, err := s.repo.FindBySiswa(siswa.ID, repository.LogbookFilter{
		Status: ctx.Query("status"),
		Bulan:  bulan,
		Tahun:  tahun,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil jurnal"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil jurnal", rows))
}

// GetJurnalDetail: 1 jurnal milik siswa yang login.
func (s *logbookService) GetJurnalDetail(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}
	siswa, ok := s.siswaLogin(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	l, err := s.repo.FindDetail(id, siswa.ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Jurnal tidak ditemukan"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail jurnal", l))
}

// CreateJurnal: tambah jurnal hari itu. Wajib punya magang aktif.
// Dikirim sebagai multipart form karena boleh membawa lampiran.
func (s *logbookService) CreateJurnal(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}
	siswa, ok := s.siswaLogin(ctx)
	if !ok {
		return
	}

	magang, err := s.repo.MagangAktif(siswa.ID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(model.ErrTanpaMagangAktif.Error()))
		return
	}

	tanggalStr := ctx.PostForm("tanggal")
	kegiatan := ctx.PostForm("kegiatan")
	if tanggalStr == "" || kegiatan == "" {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Tanggal dan kegiatan wajib diisi"))
		return
	}
	tanggal, err := time.Parse("2006-01-02", tanggalStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format tanggal tidak valid"))
		return
	}

	l := model.Logbook{
		MagangID:         magang.ID,
		Tanggal:          tanggal,
		Kegiatan:         kegiatan,
		StatusVerifikasi: model.VerifikasiPending,
	}
	if kendala := ctx.PostForm("kendala"); kendala != "" {
		l.Kendala = &kendala
	}
	if fh, err := ctx.FormFile("file"); err == nil && fh != nil {
		path, err := utils.SimpanUpload(ctx, fh, "logbook")
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan lampiran"))
			return
		}
		l.File = &path
	}

	if err := s.repo.Create(&l); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan jurnal"))
		return
	}

	catatAktivitas(s.activity, ctx, "create", "logbook", l.ID.String(), nil)
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("Jurnal berhasil ditambahkan", l))
}

// UpdateJurnal: ubah jurnal. Jurnal yang sudah disetujui terkunci; setiap
// editan mengembalikan status ke pending.
func (s *logbookService) UpdateJurnal(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	l, err := s.repo.FindMilikUser(id, currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Jurnal tidak ditemukan"))
		return
	}
	if err := model.BolehUbahLogbook(l.StatusVerifikasi); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
		return
	}

	if tanggalStr := ctx.PostForm("tanggal"); tanggalStr != "" {
		tanggal, err := time.Parse("2006-01-02", tanggalStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format tanggal tidak valid"))
			return
		}
		l.Tanggal = tanggal
	}
	if kegiatan := ctx.PostForm("kegiatan"); kegiatan != "" {
		l.Kegiatan = kegiatan
	}
	if kendala := ctx.PostForm("kendala"); kendala != "" {
		l.Kendala = &kendala
	}
	if fh, err := ctx.FormFile("file"); err == nil && fh != nil {
		path, err := utils.SimpanUpload(ctx, fh, "logbook")
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan lampiran"))
			return
		}
		if l.File != nil {
			utils.HapusUpload(*l.File)
		}
		l.File = &path
	}

	l.StatusVerifikasi = model.StatusSetelahUbah()
	l.CatatanGuru = nil

	if err := s.repo.Update(l); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal memperbarui jurnal"))
		return
	}

	catatAktivitas(s.activity, ctx, "update", "logbook", l.ID.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Jurnal berhasil diperbarui", l))
}

// DeleteJurnal: hapus jurnal (soft delete). Jurnal disetujui terkunci.
func (s *logbookService) DeleteJurnal(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleSiswa) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	l, err := s.repo.FindMilikUser(id, currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Jurnal tidak ditemukan"))
		return
	}
	if err := model.BolehUbahLogbook(l.StatusVerifikasi); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
		return
	}

	if err := s.repo.SoftDelete(l.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menghapus jurnal"))
		return
	}

	catatAktivitas(s.activity, ctx, "delete", "logbook", l.ID.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Jurnal berhasil dihapus", nil))
}

// GetJurnalGuru: antrian verifikasi jurnal seluruh siswa bimbingan.
func (s *logbookService) GetJurnalGuru(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}

	guru, err := s.userRepo.FindGuruByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil guru tidak ditemukan"))
		return
	}

	f := repository.LogbookGuruFilter{
		Status:         ctx.Query("status"),
		TanggalMulai:   ctx.Query("tanggal_mulai"),
		TanggalSelesai: ctx.Query("tanggal_selesai"),
	}
	f.Hari, _ = strconv.Atoi(ctx.Query("hari"))
	f.Bulan, _ = strconv.Atoi(ctx.Query("bulan"))
	f.Tahun, _ = strconv.Atoi(ctx.Query("tahun"))
	// limit hanya dipasang bila dikirim; nilainya di-clamp ke 1..100.
	if raw := ctx.Query("limit"); raw != "" {
		f.Limit, _ = strconv.Atoi(raw)
		if f.Limit < 1 {
			f.Limit = 1
		}
		if f.Limit > 100 {
			f.Limit = 100
		}
	}
	if sid := ctx.Query("siswa_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("ID tidak valid"))
			return
		}
		f.SiswaID = &id
	}

	rows, err := s.repo.FindUntukGuru(guru.ID, f)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil jurnal"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil jurnal", rows))
}

// VerifikasiJurnal: guru menyetujui/menolak jurnal siswa bimbingannya.
func (s *logbookService) VerifikasiJurnal(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleGuru) {
		return
	}

	guru, err := s.userRepo.FindGuruByUserID(currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Profil guru tidak ditemukan"))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := s.repo.FindBimbingan(id, guru.ID); err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("Jurnal tidak ditemukan"))
		return
	}

	var input struct {
		Status      string  `json:"status" binding:"required,oneof=pending disetujui ditolak"`
		CatatanGuru *string `json:"catatan_guru"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	l, err := s.repo.Verifikasi(id, input.Status, input.CatatanGuru)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal memverifikasi jurnal"))
		return
	}

	catatAktivitas(s.activity, ctx, "verify", "logbook", l.ID.String(), &input.Status)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Jurnal berhasil diverifikasi", l))
}
