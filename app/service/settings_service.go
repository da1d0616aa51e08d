package service

import (
	"net/http"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
)

// batas ukuran logo sekolah (5 MB).
const maksUkuranLogo = 5 << 20

// tipe file logo yang diterima.
var tipeLogoDiterima = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/svg+xml": true,
}

// SettingsService menangani identitas sekolah: data + logo.
// GET terbuka (dipakai halaman login), tulis hanya admin.
type SettingsService interface {
	GetSettings(ctx *gin.Context)
	UpdateSettings(ctx *gin.Context)
	UploadLogo(ctx *gin.Context)
	RemoveLogo(ctx *gin.Context)
}

type settingsService struct {
	repo     repository.SettingsRepository
	activity repository.ActivityRepository
}

func NewSettingsService(repo repository.SettingsRepository, activity repository.ActivityRepository) SettingsService {
	return &settingsService{repo: repo, activity: activity}
}

// GetSettings: baris pengaturan, dibuat dengan placeholder saat belum ada.
func (s *settingsService) GetSettings(ctx *gin.Context) {
	settings, err := s.repo.GetOrCreate()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil pengaturan sekolah"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil pengaturan sekolah", settings))
}

// UpdateSettings: ubah identitas sekolah. Field kosong tidak mengubah
// nilai lama.
func (s *settingsService) UpdateSettings(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	settings, err := s.repo.GetOrCreate()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil pengaturan sekolah"))
		return
	}

	var input struct {
		NamaSekolah   string `json:"nama_sekolah"`
		Alamat        string `json:"alamat"`
		Telepon       string `json:"telepon"`
		Email         string `json:"email" binding:"omitempty,email"`
		Website       string `json:"website"`
		KepalaSekolah string `json:"kepala_sekolah"`
		NPSN          string `json:"npsn"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	if input.NamaSekolah != "" {
		settings.NamaSekolah = input.NamaSekolah
	}
	if input.Alamat != "" {
		settings.Alamat = input.Alamat
	}
	if input.Telepon != "" {
		settings.Telepon = input.Telepon
	}
	if input.Email != "" {
		settings.Email = input.Email
	}
	if input.Website != "" {
		settings.Website = input.Website
	}
	if input.KepalaSekolah != "" {
		settings.KepalaSekolah = input.KepalaSekolah
	}
	if input.NPSN != "" {
		settings.NPSN = input.NPSN
	}

	if err := s.repo.Update(settings); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan pengaturan sekolah"))
		return
	}

	catatAktivitas(s.activity, ctx, "update", "school_settings", settings.ID.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Pengaturan sekolah berhasil disimpan", settings))
}

// UploadLogo: ganti logo sekolah. Hanya menerima PNG/JPEG/SVG maksimal 5 MB;
// file logo lama ikut dihapus.
func (s *settingsService) UploadLogo(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	fh, err := ctx.FormFile("logo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("File logo wajib diunggah"))
		return
	}
	if fh.Size > maksUkuranLogo {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Ukuran logo maksimal 5 MB"))
		return
	}
	if !tipeLogoDiterima[fh.Header.Get("Content-Type")] {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Format logo harus PNG, JPG, atau SVG"))
		return
	}

	lama, err := s.repo.GetOrCreate()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil pengaturan sekolah"))
		return
	}

	path, err := utils.SimpanUpload(ctx, fh, "logo")
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan logo"))
		return
	}

	settings, err := s.repo.SetLogo(&path)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menyimpan logo"))
		return
	}
	if lama.LogoURL != nil {
		utils.HapusUpload(*lama.LogoURL)
	}

	catatAktivitas(s.activity, ctx, "upload", "school_settings", settings.ID.String(), &path)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Logo berhasil diunggah", settings))
}

// RemoveLogo: hapus logo sekolah beserta file-nya.
func (s *settingsService) RemoveLogo(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	lama, err := s.repo.GetOrCreate()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil pengaturan sekolah"))
		return
	}

	settings, err := s.repo.SetLogo(nil)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menghapus logo"))
		return
	}
	if lama.LogoURL != nil {
		utils.HapusUpload(*lama.LogoURL)
	}

	catatAktivitas(s.activity, ctx, "delete", "school_settings", settings.ID.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Logo berhasil dihapus", settings))
}
