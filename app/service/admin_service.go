package service

import (
	"errors"
	"net/http"
	"strconv"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService menangani manajemen akun oleh admin + daftar jejak aktivitas.
type AdminService interface {
	GetAllUsers(ctx *gin.Context)
	GetUserDetail(ctx *gin.Context)
	CreateUser(ctx *gin.Context)
	UpdateUser(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
	GetActivities(ctx *gin.Context)
}

type adminService struct {
	repo     repository.UserAdminRepository
	activity repository.ActivityRepository
}

func NewAdminService(repo repository.UserAdminRepository, activity repository.ActivityRepository) AdminService {
	return &adminService{repo: repo, activity: activity}
}

// profilSiswaInput adalah sub-objek profil pada payload create/update user.
type profilSiswaInput struct {
	Nama    string `json:"nama"`
	NIS     string `json:"nis" binding:"required"`
	Kelas   string `json:"kelas"`
	Jurusan string `json:"jurusan"`
	Alamat  string `json:"alamat"`
	Telepon string `json:"telepon"`
}

type profilGuruInput struct {
	Nama    string `json:"nama"`
	NIP     string `json:"nip" binding:"required"`
	Alamat  string `json:"alamat"`
	Telepon string `json:"telepon"`
}

type profilDudiInput struct {
	NamaPerusahaan  string `json:"nama_perusahaan" binding:"required"`
	Alamat          string `json:"alamat"`
	Telepon         string `json:"telepon"`
	Email           string `json:"email"`
	PenanggungJawab string `json:"penanggung_jawab"`
	Status          string `json:"status" binding:"omitempty,oneof=aktif nonaktif pending"`
}

// susunProfil mengubah payload menjadi model.ProfilInput untuk role tujuan.
// Nama profil default ke nama akun jika tidak diisi.
func susunProfil(name string, siswa *profilSiswaInput, guru *profilGuruInput, dudi *profilDudiInput) model.ProfilInput {
	var p model.ProfilInput
	if siswa != nil {
		nama := siswa.Nama
		if nama == "" {
			nama = name
		}
		p.Siswa = &model.Siswa{
			Nama:    nama,
			NIS:     siswa.NIS,
			Kelas:   siswa.Kelas,
			Jurusan: siswa.Jurusan,
			Alamat:  siswa.Alamat,
			Telepon: siswa.Telepon,
		}
	}
	if guru != nil {
		nama := guru.Nama
		if nama == "" {
			nama = name
		}
		p.Guru = &model.Guru{
			Nama:    nama,
			NIP:     guru.NIP,
			Alamat:  guru.Alamat,
			Telepon: guru.Telepon,
		}
	}
	if dudi != nil {
		status := dudi.Status
		if status == "" {
			status = model.DudiPending
		}
		p.Dudi = &model.Dudi{
			NamaPerusahaan:  dudi.NamaPerusahaan,
			Alamat:          dudi.Alamat,
			Telepon:         dudi.Telepon,
			Email:           dudi.Email,
			PenanggungJawab: dudi.PenanggungJawab,
			Status:          status,
		}
	}
	return p
}

// errorAkun memetakan error repository ke response: aturan bisnis jadi 400,
// sisanya 500 tanpa bocoran detail.
func errorAkun(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTerdaftar),
		errors.Is(err, model.ErrNISTerdaftar),
		errors.Is(err, model.ErrNIPTerdaftar),
		errors.Is(err, model.ErrProfilKurang):
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Terjadi kesalahan pada server"))
	}
}

// GetAllUsers: daftar akun dengan search, filter role, dan pagination.
func (s *adminService) GetAllUsers(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	limit, offset := parseLimitOffset(ctx, 10)

	users, total, err := s.repo.FindAll(repository.UserFilter{
		Search: ctx.Query("search"),
		Role:   ctx.Query("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil data user"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseList(users, nil, &total))
}

// GetUserDetail: 1 akun beserta profil role-nya (jika ada).
func (s *adminService) GetUserDetail(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("User tidak ditemukan"))
		return
	}

	detail := gin.H{"user": user}
	switch user.Role {
	case model.RoleSiswa:
		p, _ := s.repo.FindSiswaProfile(user.ID)
		detail["siswa"] = p
	case model.RoleGuru:
		p, _ := s.repo.FindGuruProfile(user.ID)
		detail["guru"] = p
	case model.RoleDudi:
		p, _ := s.repo.FindDudiProfile(user.ID)
		detail["dudi"] = p
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil detail user", detail))
}

// CreateUser: buat akun baru beserta profil role-nya.
func (s *adminService) CreateUser(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	var input struct {
		Name     string            `json:"name" binding:"required"`
		Email    string            `json:"email" binding:"required,email"`
		Password string            `json:"password" binding:"required,min=6"`
		Role     string            `json:"role" binding:"required,oneof=admin siswa guru dudi"`
		Siswa    *profilSiswaInput `json:"siswa"`
		Guru     *profilGuruInput  `json:"guru"`
		Dudi     *profilDudiInput  `json:"dudi"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	profil := susunProfil(input.Name, input.Siswa, input.Guru, input.Dudi)
	if err := model.CekProfilUntukRole(input.Role, profil); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Terjadi kesalahan pada server"))
		return
	}

	user := model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     input.Role,
	}
	if err := s.repo.CreateWithProfile(&user, profil); err != nil {
		errorAkun(ctx, err)
		return
	}

	catatAktivitas(s.activity, ctx, "create", "user", user.ID.String(), &user.Email)
	ctx.JSON(http.StatusCreated, utils.BuildResponseSuccess("User berhasil dibuat", user))
}

// UpdateUser: ubah akun, termasuk perpindahan role. Profil role lama
// ikut dibersihkan oleh repository.
func (s *adminService) UpdateUser(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("User tidak ditemukan"))
		return
	}

	var input struct {
		Name     string            `json:"name"`
		Email    string            `json:"email" binding:"omitempty,email"`
		Password string            `json:"password" binding:"omitempty,min=6"`
		Role     string            `json:"role" binding:"omitempty,oneof=admin siswa guru dudi"`
		Siswa    *profilSiswaInput `json:"siswa"`
		Guru     *profilGuruInput  `json:"guru"`
		Dudi     *profilDudiInput  `json:"dudi"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Input tidak valid"))
		return
	}

	roleLama := user.Role
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Terjadi kesalahan pada server"))
			return
		}
		user.Password = string(hash)
	}

	profil := susunProfil(user.Name, input.Siswa, input.Guru, input.Dudi)

	// Perpindahan role wajib membawa profil role tujuan.
	if user.Role != roleLama {
		if err := model.CekProfilUntukRole(user.Role, profil); err != nil {
			ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed(err.Error()))
			return
		}
	}

	// Tanpa perpindahan role dan tanpa sub-objek profil, cukup update akun.
	if user.Role == roleLama && profil.Siswa == nil && profil.Guru == nil && profil.Dudi == nil {
		profil = model.ProfilInput{}
	}

	if err := s.repo.UpdateWithProfile(user, roleLama, profil); err != nil {
		errorAkun(ctx, err)
		return
	}

	catatAktivitas(s.activity, ctx, "update", "user", user.ID.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("User berhasil diperbarui", user))
}

// DeleteUser: hapus akun beserta profil role-nya.
func (s *adminService) DeleteUser(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("User tidak ditemukan"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal menghapus user"))
		return
	}

	catatAktivitas(s.activity, ctx, "delete", "user", id.String(), nil)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("User berhasil dihapus", nil))
}

// GetActivities: jejak aktivitas terbaru dari MongoDB.
func (s *adminService) GetActivities(ctx *gin.Context) {
	if !ensureRole(ctx, model.RoleAdmin) {
		return
	}

	limit, _ := strconv.ParseInt(ctx.DefaultQuery("limit", "50"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	activities, err := s.activity.FindRecent(ctx.Request.Context(), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal mengambil jejak aktivitas"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil jejak aktivitas", activities))
}
