package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/service"
	"magang-portal-backend/middleware"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuthService struct {
	user *model.User
}

func (f *fakeAuthService) Login(email, password string) (*model.User, error) {
	if f.user != nil && email == f.user.Email && password == "rahasia123" {
		return f.user, nil
	}
	return nil, service.ErrLoginGagal
}

func (f *fakeAuthService) Me(id uuid.UUID) (*model.User, error) {
	if f.user != nil && id == f.user.ID {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func routerAuth(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc).SetupAuthRoutes(r)
	return r
}

func TestLoginMengirimTokenDanCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	user := &model.User{ID: uuid.New(), Name: "Ani", Email: "ani@sekolah.sch.id", Role: model.RoleSiswa}
	r := routerAuth(&fakeAuthService{user: user})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ani@sekolah.sch.id","password":"rahasia123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Contains(t, rec.Body.String(), `"role":"siswa"`)

	// cookie auth-token ikut terpasang
	cookies := rec.Result().Cookies()
	var ada bool
	for _, c := range cookies {
		if c.Name == middleware.AuthCookieName && c.Value != "" {
			ada = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, ada, "cookie %s harus terpasang", middleware.AuthCookieName)
}

func TestLoginKredensialSalah(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	user := &model.User{ID: uuid.New(), Email: "ani@sekolah.sch.id", Role: model.RoleSiswa}
	r := routerAuth(&fakeAuthService{user: user})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ani@sekolah.sch.id","password":"salah"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email atau password salah")
}

func TestLoginInputKosong(t *testing.T) {
	r := routerAuth(&fakeAuthService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeDenganTokenLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	user := &model.User{ID: uuid.New(), Name: "Ani", Email: "ani@sekolah.sch.id", Role: model.RoleSiswa}
	svc := &fakeAuthService{user: user}
	r := routerAuth(svc)

	// login dulu untuk mendapat cookie
	recLogin := httptest.NewRecorder()
	reqLogin := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ani@sekolah.sch.id","password":"rahasia123"}`))
	reqLogin.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(recLogin, reqLogin)
	require.Equal(t, http.StatusOK, recLogin.Code)

	// nama diubah setelah login: /me harus membaca data terbaru, bukan klaim token
	svc.user.Name = "Ani Baru"

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	for _, c := range recLogin.Result().Cookies() {
		req.AddCookie(c)
	}
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ani@sekolah.sch.id")
	assert.Contains(t, rec.Body.String(), "Ani Baru")
}

func TestMeUserSudahDihapus(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	// token valid, tapi user-nya sudah tidak ada di database
	hilang := &model.User{ID: uuid.New(), Name: "Hilang", Email: "hilang@sekolah.sch.id", Role: model.RoleSiswa}
	token, err := utils.GenerateToken(hilang)
	require.NoError(t, err)

	r := routerAuth(&fakeAuthService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User tidak ditemukan")
}

func TestMeTanpaToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")
	r := routerAuth(&fakeAuthService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
