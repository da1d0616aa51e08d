package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestCtx menyiapkan gin context untuk pengujian handler: request JSON +
// identitas user seolah-olah sudah lolos AuthMiddleware.
func newTestCtx(t *testing.T, method, path string, body interface{}, userID uuid.UUID, role string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req

	ctx.Set("userID", userID)
	ctx.Set("name", "Tester")
	ctx.Set("email", "tester@sekolah.sch.id")
	ctx.Set("role", role)

	return ctx, rec
}

// decodeBody membongkar response envelope.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// setParam menempelkan path param (gin.CreateTestContext tidak mem-parse URL).
func setParam(ctx *gin.Context, key, val string) {
	ctx.Params = append(ctx.Params, gin.Param{Key: key, Value: val})
}

// ===============================
//  FAKE REPOSITORIES
// ===============================
// Fake berbasis function field: test mengisi hanya method yang disentuh,
// sisanya mengembalikan not found.

type fakeUserRepo struct {
	findByEmail       func(email string) (*model.User, error)
	findByID          func(id uuid.UUID) (*model.User, error)
	findSiswaByUserID func(userID uuid.UUID) (*model.Siswa, error)
	findGuruByUserID  func(userID uuid.UUID) (*model.Guru, error)
	findAllSiswa      func() ([]model.Siswa, error)
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if f.findByEmail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByEmail(email)
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if f.findByID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByID(id)
}

func (f *fakeUserRepo) FindSiswaByUserID(userID uuid.UUID) (*model.Siswa, error) {
	if f.findSiswaByUserID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findSiswaByUserID(userID)
}

func (f *fakeUserRepo) FindGuruByUserID(userID uuid.UUID) (*model.Guru, error) {
	if f.findGuruByUserID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findGuruByUserID(userID)
}

func (f *fakeUserRepo) FindAllSiswa() ([]model.Siswa, error) {
	if f.findAllSiswa == nil {
		return nil, nil
	}
	return f.findAllSiswa()
}

type fakeDudiRepo struct {
	findAll             func(search string, limit, offset int) ([]model.DudiRingkasan, error)
	findByID            func(id uuid.UUID) (*model.DudiRingkasan, error)
	stats               func() (*model.DudiStats, error)
	create              func(d *model.Dudi) error
	update              func(d *model.Dudi) error
	delete              func(id uuid.UUID) error
	findAktifUntukSiswa func(siswaID uuid.UUID, search string, limit, offset int) ([]model.DudiUntukSiswa, int64, error)
	findByGuru          func(guruID uuid.UUID, search string, limit, offset int) ([]model.DudiRingkasan, error)
}

func (f *fakeDudiRepo) FindAll(search string, limit, offset int) ([]model.DudiRingkasan, error) {
	if f.findAll == nil {
		return nil, nil
	}
	return f.findAll(search, limit, offset)
}

func (f *fakeDudiRepo) FindByID(id uuid.UUID) (*model.DudiRingkasan, error) {
	if f.findByID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByID(id)
}

func (f *fakeDudiRepo) Stats() (*model.DudiStats, error) {
	if f.stats == nil {
		return &model.DudiStats{}, nil
	}
	return f.stats()
}

func (f *fakeDudiRepo) Create(d *model.Dudi) error {
	if f.create == nil {
		return nil
	}
	return f.create(d)
}

func (f *fakeDudiRepo) Update(d *model.Dudi) error {
	if f.update == nil {
		return nil
	}
	return f.update(d)
}

func (f *fakeDudiRepo) Delete(id uuid.UUID) error {
	if f.delete == nil {
		return nil
	}
	return f.delete(id)
}

func (f *fakeDudiRepo) FindAktifUntukSiswa(siswaID uuid.UUID, search string, limit, offset int) ([]model.DudiUntukSiswa, int64, error) {
	if f.findAktifUntukSiswa == nil {
		return nil, 0, nil
	}
	return f.findAktifUntukSiswa(siswaID, search, limit, offset)
}

func (f *fakeDudiRepo) FindByGuru(guruID uuid.UUID, search string, limit, offset int) ([]model.DudiRingkasan, error) {
	if f.findByGuru == nil {
		return nil, nil
	}
	return f.findByGuru(guruID, search, limit, offset)
}

type fakeMagangRepo struct {
	findByGuru           func(guruID uuid.UUID, search, status string, limit, offset int) ([]model.MagangRingkasan, error)
	statsByGuru          func(guruID uuid.UUID) (*model.MagangGuruStats, error)
	findOwned            func(id, guruID uuid.UUID) (*model.Magang, error)
	adaMagangAktifDiGuru func(siswaID, guruID uuid.UUID) (bool, error)
	create               func(m *model.Magang) error
	update               func(m *model.Magang) error
	delete               func(id uuid.UUID) error
	daftarkan            func(siswaID, dudiID uuid.UUID) (*model.Magang, error)
}

func (f *fakeMagangRepo) FindByGuru(guruID uuid.UUID, search, status string, limit, offset int) ([]model.MagangRingkasan, error) {
	if f.findByGuru == nil {
		return nil, nil
	}
	return f.findByGuru(guruID, search, status, limit, offset)
}

func (f *fakeMagangRepo) StatsByGuru(guruID uuid.UUID) (*model.MagangGuruStats, error) {
	if f.statsByGuru == nil {
		return &model.MagangGuruStats{}, nil
	}
	return f.statsByGuru(guruID)
}

func (f *fakeMagangRepo) FindOwned(id, guruID uuid.UUID) (*model.Magang, error) {
	if f.findOwned == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findOwned(id, guruID)
}

func (f *fakeMagangRepo) AdaMagangAktifDiGuru(siswaID, guruID uuid.UUID) (bool, error) {
	if f.adaMagangAktifDiGuru == nil {
		return false, nil
	}
	return f.adaMagangAktifDiGuru(siswaID, guruID)
}

func (f *fakeMagangRepo) Create(m *model.Magang) error {
	if f.create == nil {
		return nil
	}
	return f.create(m)
}

func (f *fakeMagangRepo) Update(m *model.Magang) error {
	if f.update == nil {
		return nil
	}
	return f.update(m)
}

func (f *fakeMagangRepo) Delete(id uuid.UUID) error {
	if f.delete == nil {
		return nil
	}
	return f.delete(id)
}

func (f *fakeMagangRepo) Daftarkan(siswaID, dudiID uuid.UUID) (*model.Magang, error) {
	if f.daftarkan == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.daftarkan(siswaID, dudiID)
}

type fakeLogbookRepo struct {
	findBySiswa   func(siswaID uuid.UUID, f repository.LogbookFilter) ([]model.Logbook, error)
	findDetail    func(id, siswaID uuid.UUID) (*model.Logbook, error)
	magangAktif   func(siswaID uuid.UUID) (*model.Magang, error)
	create        func(l *model.Logbook) error
	findMilikUser func(id, userID uuid.UUID) (*model.Logbook, error)
	update        func(l *model.Logbook) error
	softDelete    func(id uuid.UUID) error
	findUntukGuru func(guruID uuid.UUID, f repository.LogbookGuruFilter) ([]model.LogbookGuru, error)
	findBimbingan func(id, guruID uuid.UUID) (*model.Logbook, error)
	verifikasi    func(id uuid.UUID, status string, catatan *string) (*model.Logbook, error)
}

func (f *fakeLogbookRepo) FindBySiswa(siswaID uuid.UUID, filter repository.LogbookFilter) ([]model.Logbook, error) {
	if f.findBySiswa == nil {
		return nil, nil
	}
	return f.findBySiswa(siswaID, filter)
}

func (f *fakeLogbookRepo) FindDetail(id, siswaID uuid.UUID) (*model.Logbook, error) {
	if f.findDetail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findDetail(id, siswaID)
}

func (f *fakeLogbookRepo) MagangAktif(siswaID uuid.UUID) (*model.Magang, error) {
	if f.magangAktif == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.magangAktif(siswaID)
}

func (f *fakeLogbookRepo) Create(l *model.Logbook) error {
	if f.create == nil {
		return nil
	}
	return f.create(l)
}

func (f *fakeLogbookRepo) FindMilikUser(id, userID uuid.UUID) (*model.Logbook, error) {
	if f.findMilikUser == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findMilikUser(id, userID)
}

func (f *fakeLogbookRepo) Update(l *model.Logbook) error {
	if f.update == nil {
		return nil
	}
	return f.update(l)
}

func (f *fakeLogbookRepo) SoftDelete(id uuid.UUID) error {
	if f.softDelete == nil {
		return nil
	}
	return f.softDelete(id)
}

func (f *fakeLogbookRepo) FindUntukGuru(guruID uuid.UUID, filter repository.LogbookGuruFilter) ([]model.LogbookGuru, error) {
	if f.findUntukGuru == nil {
		return nil, nil
	}
	return f.findUntukGuru(guruID, filter)
}

func (f *fakeLogbookRepo) FindBimbingan(id, guruID uuid.UUID) (*model.Logbook, error) {
	if f.findBimbingan == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findBimbingan(id, guruID)
}

func (f *fakeLogbookRepo) Verifikasi(id uuid.UUID, status string, catatan *string) (*model.Logbook, error) {
	if f.verifikasi == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.verifikasi(id, status, catatan)
}

type fakeUserAdminRepo struct {
	findAll           func(f repository.UserFilter) ([]model.User, int64, error)
	findByID          func(id uuid.UUID) (*model.User, error)
	findSiswaProfile  func(userID uuid.UUID) (*model.Siswa, error)
	findGuruProfile   func(userID uuid.UUID) (*model.Guru, error)
	findDudiProfile   func(userID uuid.UUID) (*model.Dudi, error)
	createWithProfile func(user *model.User, profil model.ProfilInput) error
	updateWithProfile func(user *model.User, roleLama string, profil model.ProfilInput) error
	delete            func(id uuid.UUID) error
}

func (f *fakeUserAdminRepo) FindAll(filter repository.UserFilter) ([]model.User, int64, error) {
	if f.findAll == nil {
		return nil, 0, nil
	}
	return f.findAll(filter)
}

func (f *fakeUserAdminRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if f.findByID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByID(id)
}

func (f *fakeUserAdminRepo) FindSiswaProfile(userID uuid.UUID) (*model.Siswa, error) {
	if f.findSiswaProfile == nil {
		return nil, nil
	}
	return f.findSiswaProfile(userID)
}

func (f *fakeUserAdminRepo) FindGuruProfile(userID uuid.UUID) (*model.Guru, error) {
	if f.findGuruProfile == nil {
		return nil, nil
	}
	return f.findGuruProfile(userID)
}

func (f *fakeUserAdminRepo) FindDudiProfile(userID uuid.UUID) (*model.Dudi, error) {
	if f.findDudiProfile == nil {
		return nil, nil
	}
	return f.findDudiProfile(userID)
}

func (f *fakeUserAdminRepo) CreateWithProfile(user *model.User, profil model.ProfilInput) error {
	if f.createWithProfile == nil {
		return nil
	}
	return f.createWithProfile(user, profil)
}

func (f *fakeUserAdminRepo) UpdateWithProfile(user *model.User, roleLama string, profil model.ProfilInput) error {
	if f.updateWithProfile == nil {
		return nil
	}
	return f.updateWithProfile(user, roleLama, profil)
}

func (f *fakeUserAdminRepo) Delete(id uuid.UUID) error {
	if f.delete == nil {
		return nil
	}
	return f.delete(id)
}

type fakeReportRepo struct {
	adminDashboard func() (*model.AdminDashboard, error)
	guruDashboard  func(guruID uuid.UUID) (*model.GuruDashboard, error)
	siswaDashboard func(siswaID uuid.UUID) (*model.SiswaDashboard, error)
	siswaProfil    func(userID uuid.UUID) (*model.SiswaProfil, error)
}

func (f *fakeReportRepo) AdminDashboard() (*model.AdminDashboard, error) {
	if f.adminDashboard == nil {
		return &model.AdminDashboard{}, nil
	}
	return f.adminDashboard()
}

func (f *fakeReportRepo) GuruDashboard(guruID uuid.UUID) (*model.GuruDashboard, error) {
	if f.guruDashboard == nil {
		return &model.GuruDashboard{}, nil
	}
	return f.guruDashboard(guruID)
}

func (f *fakeReportRepo) SiswaDashboard(siswaID uuid.UUID) (*model.SiswaDashboard, error) {
	if f.siswaDashboard == nil {
		return &model.SiswaDashboard{}, nil
	}
	return f.siswaDashboard(siswaID)
}

func (f *fakeReportRepo) SiswaProfil(userID uuid.UUID) (*model.SiswaProfil, error) {
	if f.siswaProfil == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.siswaProfil(userID)
}

type fakeSettingsRepo struct {
	settings *model.SchoolSettings
}

func (f *fakeSettingsRepo) GetOrCreate() (*model.SchoolSettings, error) {
	if f.settings == nil {
		f.settings = &model.SchoolSettings{ID: uuid.New(), NamaSekolah: "Nama Sekolah Belum Diatur"}
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(s *model.SchoolSettings) error {
	f.settings = s
	return nil
}

func (f *fakeSettingsRepo) SetLogo(logoURL *string) (*model.SchoolSettings, error) {
	s, _ := f.GetOrCreate()
	s.LogoURL = logoURL
	return s, nil
}

// fakeActivityRepo menghitung pencatatan, cukup untuk memastikan jejak
// aktivitas terpanggil tanpa MongoDB.
type fakeActivityRepo struct {
	recorded []model.Activity
}

func (f *fakeActivityRepo) Record(_ context.Context, a *model.Activity) error {
	f.recorded = append(f.recorded, *a)
	return nil
}

func (f *fakeActivityRepo) FindRecent(_ context.Context, limit int64) ([]model.Activity, error) {
	if int64(len(f.recorded)) < limit {
		return f.recorded, nil
	}
	return f.recorded[:limit], nil
}
