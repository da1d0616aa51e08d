package service

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFormCtx seperti newTestCtx, tetapi body berupa form (endpoint jurnal
// menerima form karena boleh membawa lampiran).
func newFormCtx(t *testing.T, method, path string, form url.Values, userID uuid.UUID, role string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx.Request = req

	ctx.Set("userID", userID)
	ctx.Set("role", role)

	return ctx, rec
}

func logbookServiceUntukSiswa(repo *fakeLogbookRepo, activity *fakeActivityRepo) (LogbookService, uuid.UUID) {
	userRepo := &fakeUserRepo{
		findSiswaByUserID: func(uid uuid.UUID) (*model.Siswa, error) {
			return &model.Siswa{ID: uuid.New(), UserID: uid}, nil
		},
	}
	return NewLogbookService(repo, userRepo, activity), uuid.New()
}

func TestCreateJurnalTanpaMagangAktif(t *testing.T) {
	svc, userID := logbookServiceUntukSiswa(&fakeLogbookRepo{}, &fakeActivityRepo{})

	form := url.Values{"tanggal": {"2026-03-02"}, "kegiatan": {"Belajar instalasi jaringan"}}
	ctx, rec := newFormCtx(t, http.MethodPost, "/api/v1/siswa/logbook", form, userID, model.RoleSiswa)

	svc.CreateJurnal(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Tidak ada magang aktif", resp["message"])
}

func TestCreateJurnalSukses(t *testing.T) {
	magangID := uuid.New()
	var tersimpan *model.Logbook
	repo := &fakeLogbookRepo{
		magangAktif: func(siswaID uuid.UUID) (*model.Magang, error) {
			return &model.Magang{ID: magangID, Status: model.MagangBerlangsung}, nil
		},
		create: func(l *model.Logbook) error {
			tersimpan = l
			return nil
		},
	}
	activity := &fakeActivityRepo{}
	svc, userID := logbookServiceUntukSiswa(repo, activity)

	form := url.Values{
		"tanggal":  {"2026-03-02"},
		"kegiatan": {"Belajar instalasi jaringan"},
		"kendala":  {"Kabel LAN kurang"},
	}
	ctx, rec := newFormCtx(t, http.MethodPost, "/api/v1/siswa/logbook", form, userID, model.RoleSiswa)

	svc.CreateJurnal(ctx)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, tersimpan)
	assert.Equal(t, magangID, tersimpan.MagangID)
	assert.Equal(t, model.VerifikasiPending, tersimpan.StatusVerifikasi)
	require.NotNil(t, tersimpan.Kendala)
	assert.Equal(t, "Kabel LAN kurang", *tersimpan.Kendala)
	assert.Len(t, activity.recorded, 1)
}

func TestUpdateJurnalSudahDisetujui(t *testing.T) {
	id := uuid.New()
	repo := &fakeLogbookRepo{
		findMilikUser: func(lid, userID uuid.UUID) (*model.Logbook, error) {
			return &model.Logbook{ID: lid, StatusVerifikasi: model.VerifikasiDisetujui}, nil
		},
	}
	svc, userID := logbookServiceUntukSiswa(repo, &fakeActivityRepo{})

	form := url.Values{"kegiatan": {"Revisi kegiatan"}}
	ctx, rec := newFormCtx(t, http.MethodPut, "/api/v1/siswa/logbook/"+id.String(), form, userID, model.RoleSiswa)
	setParam(ctx, "id", id.String())

	svc.UpdateJurnal(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Jurnal sudah disetujui, tidak bisa diubah", resp["message"])
}

func TestUpdateJurnalKembaliKePending(t *testing.T) {
	id := uuid.New()
	catatan := "Kegiatan kurang jelas"
	var tersimpan *model.Logbook
	repo := &fakeLogbookRepo{
		findMilikUser: func(lid, userID uuid.UUID) (*model.Logbook, error) {
			return &model.Logbook{
				ID:               lid,
				Kegiatan:         "Kegiatan lama",
				StatusVerifikasi: model.VerifikasiDitolak,
				CatatanGuru:      &catatan,
			}, nil
		},
		update: func(l *model.Logbook) error {
			tersimpan = l
			return nil
		},
	}
	svc, userID := logbookServiceUntukSiswa(repo, &fakeActivityRepo{})

	form := url.Values{"kegiatan": {"Kegiatan sudah diperjelas"}}
	ctx, rec := newFormCtx(t, http.MethodPut, "/api/v1/siswa/logbook/"+id.String(), form, userID, model.RoleSiswa)
	setParam(ctx, "id", id.String())

	svc.UpdateJurnal(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tersimpan)
	assert.Equal(t, "Kegiatan sudah diperjelas", tersimpan.Kegiatan)
	assert.Equal(t, model.VerifikasiPending, tersimpan.StatusVerifikasi)
	assert.Nil(t, tersimpan.CatatanGuru)
}

func TestDeleteJurnalSudahDisetujui(t *testing.T) {
	id := uuid.New()
	repo := &fakeLogbookRepo{
		findMilikUser: func(lid, userID uuid.UUID) (*model.Logbook, error) {
			return &model.Logbook{ID: lid, StatusVerifikasi: model.VerifikasiDisetujui}, nil
		},
	}
	svc, userID := logbookServiceUntukSiswa(repo, &fakeActivityRepo{})

	ctx, rec := newTestCtx(t, http.MethodDelete, "/api/v1/siswa/logbook/"+id.String(), nil, userID, model.RoleSiswa)
	setParam(ctx, "id", id.String())

	svc.DeleteJurnal(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifikasiJurnalBukanBimbingan(t *testing.T) {
	userRepo := &fakeUserRepo{
		findGuruByUserID: func(uid uuid.UUID) (*model.Guru, error) {
			return &model.Guru{ID: uuid.New(), UserID: uid}, nil
		},
	}
	// findBimbingan nil: jurnal bukan milik siswa bimbingan guru ini
	svc := NewLogbookService(&fakeLogbookRepo{}, userRepo, &fakeActivityRepo{})

	id := uuid.New()
	body := map[string]string{"status": model.VerifikasiDisetujui}
	ctx, rec := newTestCtx(t, http.MethodPut, "/api/v1/guru/logbook/"+id.String()+"/verifikasi", body, uuid.New(), model.RoleGuru)
	setParam(ctx, "id", id.String())

	svc.VerifikasiJurnal(ctx)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifikasiJurnalSukses(t *testing.T) {
	id := uuid.New()
	userRepo := &fakeUserRepo{
		findGuruByUserID: func(uid uuid.UUID) (*model.Guru, error) {
			return &model.Guru{ID: uuid.New(), UserID: uid}, nil
		},
	}
	repo := &fakeLogbookRepo{
		findBimbingan: func(lid, guruID uuid.UUID) (*model.Logbook, error) {
			return &model.Logbook{ID: lid, StatusVerifikasi: model.VerifikasiPending}, nil
		},
		verifikasi: func(lid uuid.UUID, status string, catatan *string) (*model.Logbook, error) {
			return &model.Logbook{ID: lid, StatusVerifikasi: status, CatatanGuru: catatan}, nil
		},
	}
	activity := &fakeActivityRepo{}
	svc := NewLogbookService(repo, userRepo, activity)

	body := map[string]string{"status": model.VerifikasiDisetujui, "catatan_guru": "Bagus, lanjutkan"}
	ctx, rec := newTestCtx(t, http.MethodPut, "/api/v1/guru/logbook/"+id.String()+"/verifikasi", body, uuid.New(), model.RoleGuru)
	setParam(ctx, "id", id.String())

	svc.VerifikasiJurnal(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, model.VerifikasiDisetujui, data["status_verifikasi"])
	assert.Equal(t, "Bagus, lanjutkan", data["catatan_guru"])
	if assert.Len(t, activity.recorded, 1) {
		assert.Equal(t, "verify", activity.recorded[0].Action)
	}
}

func TestVerifikasiJurnalStatusTidakDikenal(t *testing.T) {
	id := uuid.New()
	userRepo := &fakeUserRepo{
		findGuruByUserID: func(uid uuid.UUID) (*model.Guru, error) {
			return &model.Guru{ID: uuid.New(), UserID: uid}, nil
		},
	}
	repo := &fakeLogbookRepo{
		findBimbingan: func(lid, guruID uuid.UUID) (*model.Logbook, error) {
			return &model.Logbook{ID: lid}, nil
		},
	}
	svc := NewLogbookService(repo, userRepo, &fakeActivityRepo{})

	body := map[string]string{"status": "oke"}
	ctx, rec := newTestCtx(t, http.MethodPut, "/api/v1/guru/logbook/"+id.String()+"/verifikasi", body, uuid.New(), model.RoleGuru)
	setParam(ctx, "id", id.String())

	svc.VerifikasiJurnal(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJurnalListPaginasi(t *testing.T) {
	var dipakai repository.LogbookFilter
	repo := &fakeLogbookRepo{
		findBySiswa: func(siswaID uuid.UUID, f repository.LogbookFilter) ([]model.Logbook, error) {
			dipakai = f
			return nil, nil
		},
	}
	svc, userID := logbookServiceUntukSiswa(repo, &fakeActivityRepo{})

	// tanpa parameter: 10 jurnal dari awal
	ctx, rec := newTestCtx(t, http.MethodGet, "/api/v1/siswa/logbook", nil, userID, model.RoleSiswa)
	svc.GetJurnalList(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, dipakai.Limit)
	assert.Equal(t, 0, dipakai.Offset)

	// limit/offset dari query diteruskan apa adanya
	ctx, rec = newTestCtx(t, http.MethodGet, "/api/v1/siswa/logbook?limit=5&offset=15", nil, userID, model.RoleSiswa)
	svc.GetJurnalList(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, dipakai.Limit)
	assert.Equal(t, 15, dipakai.Offset)
}

func TestGetJurnalGuruLimitDiClamp(t *testing.T) {
	var dipakai repository.LogbookGuruFilter
	repo := &fakeLogbookRepo{
		findUntukGuru: func(guruID uuid.UUID, f repository.LogbookGuruFilter) ([]model.LogbookGuru, error) {
			dipakai = f
			return nil, nil
		},
	}
	userRepo := &fakeUserRepo{
		findGuruByUserID: func(uid uuid.UUID) (*model.Guru, error) {
			return &model.Guru{ID: uuid.New(), UserID: uid}, nil
		},
	}
	svc := NewLogbookService(repo, userRepo, &fakeActivityRepo{})

	// tanpa limit: seluruh antrian (tanpa LIMIT)
	ctx, rec := newTestCtx(t, http.MethodGet, "/api/v1/guru/logbook", nil, uuid.New(), model.RoleGuru)
	svc.GetJurnalGuru(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, dipakai.Limit)

	// limit terlalu besar di-clamp ke 100, bukan di-reset
	ctx, rec = newTestCtx(t, http.MethodGet, "/api/v1/guru/logbook?limit=150", nil, uuid.New(), model.RoleGuru)
	svc.GetJurnalGuru(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, dipakai.Limit)

	// limit di bawah 1 naik ke 1
	ctx, rec = newTestCtx(t, http.MethodGet, "/api/v1/guru/logbook?limit=0", nil, uuid.New(), model.RoleGuru)
	svc.GetJurnalGuru(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, dipakai.Limit)
}
