package routes

import (
	"net/http"

	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler adalah struct pengelola request untuk fitur Autentikasi.
// Struct ini menyimpan dependency ke AuthService.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler adalah constructor untuk membuat instance handler baru.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mengatur Peta URL (Routing) autentikasi.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)

		// /me butuh token: dipakai frontend untuk restore sesi.
		authGroup.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}

// Login memeriksa kredensial lalu mengirim token JWT dua jalur sekaligus:
// di body response dan sebagai cookie HTTP-only.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("Email dan password wajib diisi"))
		return
	}

	user, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		// Email tidak terdaftar dan password salah dijawab sama.
		ctx.JSON(http.StatusUnauthorized, utils.BuildResponseFailed(err.Error()))
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.BuildResponseFailed("Gagal membuat token"))
		return
	}

	ctx.SetCookie(middleware.AuthCookieName, token, int(utils.TokenLifetime.Seconds()), "/", "", false, true)

	data := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Login berhasil", data))
}

// Logout menghapus cookie token. Token di sisi client menjadi tanggung
// jawab frontend.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Logout berhasil", nil))
}

// Me mengembalikan identitas user pemilik token, dibaca segar dari database.
func (h *AuthHandler) Me(ctx *gin.Context) {
	idI, _ := ctx.Get("userID")
	id, _ := idI.(uuid.UUID)

	user, err := h.authService.Me(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, utils.BuildResponseFailed("User tidak ditemukan"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess("Berhasil mengambil data user", map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}))
}
