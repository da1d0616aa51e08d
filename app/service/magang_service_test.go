package service

import (
	"net/http"
	"testing"

	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magangServiceDenganFake(magang *fakeMagangRepo, dudi *fakeDudiRepo) (MagangService, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	guruID := uuid.New()

	userRepo := &fakeUserRepo{
		findGuruByUserID: func(uid uuid.UUID) (*model.Guru, error) {
			return &model.Guru{ID: guruID, UserID: uid, Nama: "Budi"}, nil
		},
	}
	return NewMagangService(magang, dudi, userRepo, &fakeActivityRepo{}), userID, guruID
}

func TestGetMagangListPaginasi(t *testing.T) {
	var gotLimit, gotOffset int
	magang := &fakeMagangRepo{
		findByGuru: func(guruID uuid.UUID, search, status string, limit, offset int) ([]model.MagangRingkasan, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
		statsByGuru: func(guruID uuid.UUID) (*model.MagangGuruStats, error) {
			return &model.MagangGuruStats{}, nil
		},
	}
	svc, userID, _ := magangServiceDenganFake(magang, &fakeDudiRepo{})

	// tanpa parameter: 10 baris dari awal
	ctx, rec := newTestCtx(t, http.MethodGet, "/api/v1/guru/magang", nil, userID, model.RoleGuru)
	svc.GetMagangList(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 0, gotOffset)

	// limit/offset dari query diteruskan apa adanya
	ctx, rec = newTestCtx(t, http.MethodGet, "/api/v1/guru/magang?limit=5&offset=10", nil, userID, model.RoleGuru)
	svc.GetMagangList(ctx)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, 10, gotOffset)
}

func TestUpdateMagangNilaiDipaksaNull(t *testing.T) {
	magangID := uuid.New()
	var tersimpan *model.Magang
	repo := &fakeMagangRepo{
		findOwned: func(id, guruID uuid.UUID) (*model.Magang, error) {
			return &model.Magang{ID: id, GuruID: guruID, Status: model.MagangBerlangsung}, nil
		},
		update: func(m *model.Magang) error {
			tersimpan = m
			return nil
		},
	}
	svc, userID, _ := magangServiceDenganFake(repo, &fakeDudiRepo{})

	// status tetap berlangsung tetapi nilai dikirim: nilai harus dibuang
	body := map[string]interface{}{"nilai_akhir": 88.5}
	ctx, rec := newTestCtx(t, http.MethodPut, "/api/v1/guru/magang/"+magangID.String(), body, userID, model.RoleGuru)
	setParam(ctx, "id", magangID.String())

	svc.UpdateMagang(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tersimpan)
	assert.Nil(t, tersimpan.NilaiAkhir)
}

func TestUpdateMagangSelesaiMenyimpanNilai(t *testing.T) {
	magangID := uuid.New()
	var tersimpan *model.Magang
	repo := &fakeMagangRepo{
		findOwned: func(id, guruID uuid.UUID) (*model.Magang, error) {
			return &model.Magang{ID: id, GuruID: guruID, Status: model.MagangBerlangsung}, nil
		},
		update: func(m *model.Magang) error {
			tersimpan = m
			return nil
		},
	}
	svc, userID, _ := magangServiceDenganFake(repo, &fakeDudiRepo{})

	body := map[string]interface{}{"status": model.MagangSelesai, "nilai_akhir": 88.5}
	ctx, rec := newTestCtx(t, http.MethodPut, "/api/v1/guru/magang/"+magangID.String(), body, userID, model.RoleGuru)
	setParam(ctx, "id", magangID.String())

	svc.UpdateMagang(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tersimpan)
	require.NotNil(t, tersimpan.NilaiAkhir)
	assert.Equal(t, 88.5, *tersimpan.NilaiAkhir)
}

func TestUpdateMagangMilikGuruLain(t *testing.T) {
	repo := &fakeMagangRepo{} // findOwned nil: selalu not found
	svc, userID, _ := magangServiceDenganFake(repo, &fakeDudiRepo{})

	id := uuid.New()
	ctx, rec := newTestCtx(t, http.MethodPut, "/api/v1/guru/magang/"+id.String(), map[string]string{}, userID, model.RoleGuru)
	setParam(ctx, "id", id.String())

	svc.UpdateMagang(ctx)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMagangDudiNonaktif(t *testing.T) {
	dudiID := uuid.New()
	dudi := &fakeDudiRepo{
		findByID: func(id uuid.UUID) (*model.DudiRingkasan, error) {
			return &model.DudiRingkasan{Dudi: model.Dudi{ID: id, Status: model.DudiNonaktif}}, nil
		},
	}
	svc, userID, _ := magangServiceDenganFake(&fakeMagangRepo{}, dudi)

	body := map[string]string{"siswa_id": uuid.NewString(), "dudi_id": dudiID.String()}
	ctx, rec := newTestCtx(t, http.MethodPost, "/api/v1/guru/magang", body, userID, model.RoleGuru)

	svc.CreateMagang(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "DUDI tidak ditemukan atau tidak aktif", resp["message"])
}

func TestCreateMagangSiswaMasihAktif(t *testing.T) {
	dudi := &fakeDudiRepo{
		findByID: func(id uuid.UUID) (*model.DudiRingkasan, error) {
			return &model.DudiRingkasan{Dudi: model.Dudi{ID: id, Status: model.DudiAktif}}, nil
		},
	}
	magang := &fakeMagangRepo{
		adaMagangAktifDiGuru: func(siswaID, guruID uuid.UUID) (bool, error) { return true, nil },
	}
	svc, userID, _ := magangServiceDenganFake(magang, dudi)

	body := map[string]string{"siswa_id": uuid.NewString(), "dudi_id": uuid.NewString()}
	ctx, rec := newTestCtx(t, http.MethodPost, "/api/v1/guru/magang", body, userID, model.RoleGuru)

	svc.CreateMagang(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Siswa sudah terdaftar dalam program magang yang aktif", resp["message"])
}

func TestDeleteMagangSudahAdaLogbook(t *testing.T) {
	id := uuid.New()
	repo := &fakeMagangRepo{
		findOwned: func(mid, guruID uuid.UUID) (*model.Magang, error) {
			return &model.Magang{ID: mid, GuruID: guruID}, nil
		},
		delete: func(uuid.UUID) error { return model.ErrMagangAdaLogbook },
	}
	svc, userID, _ := magangServiceDenganFake(repo, &fakeDudiRepo{})

	ctx, rec := newTestCtx(t, http.MethodDelete, "/api/v1/guru/magang/"+id.String(), nil, userID, model.RoleGuru)
	setParam(ctx, "id", id.String())

	svc.DeleteMagang(ctx)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Tidak dapat menghapus data magang yang sudah memiliki logbook", resp["message"])
}
