package repository

import (
	"errors"

	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MagangRepository mendefinisikan kontrak operasi database untuk penempatan
// magang: daftar bimbingan guru, CRUD milik guru, dan pendaftaran mandiri
// siswa (Daftarkan) yang seluruh guard-nya berjalan dalam satu transaksi.
type MagangRepository interface {
	FindByGuru(guruID uuid.UUID, search, status string, limit, offset int) ([]model.MagangRingkasan, error)
	StatsByGuru(guruID uuid.UUID) (*model.MagangGuruStats, error)
	FindOwned(id, guruID uuid.UUID) (*model.Magang, error)
	AdaMagangAktifDiGuru(siswaID, guruID uuid.UUID) (bool, error)
	Create(m *model.Magang) error
	Update(m *model.Magang) error
	Delete(id uuid.UUID) error
	Daftarkan(siswaID, dudiID uuid.UUID) (*model.Magang, error)
}

type magangRepository struct {
	db *gorm.DB
}

// NewMagangRepository membuat instance baru magangRepository.
func NewMagangRepository(db *gorm.DB) MagangRepository {
	return &magangRepository{db}
}

// FindByGuru mengambil daftar magang yang dibimbing seorang guru, lengkap
// dengan identitas siswa dan DUDI. Filter status "berlangsung" sengaja
// memasukkan juga status "diterima" (keduanya dihitung aktif di UI).
func (r *magangRepository) FindByGuru(guruID uuid.UUID, search, status string, limit, offset int) ([]model.MagangRingkasan, error) {
	query := `
		SELECT m.*,
		       s.nama AS siswa_nama, s.nis AS siswa_nis, s.kelas AS siswa_kelas, s.jurusan AS siswa_jurusan,
		       d.nama_perusahaan, d.alamat AS alamat_dudi,
		       g.nama AS guru_nama
		FROM magang m
		JOIN siswa s ON m.siswa_id = s.id
		JOIN dudi d ON m.dudi_id = d.id
		JOIN guru g ON m.guru_id = g.id
		WHERE m.guru_id = ?`
	args := []interface{}{guruID}

	if search != "" {
		q := "%" + search + "%"
		query += ` AND (s.nama ILIKE ? OR d.nama_perusahaan ILIKE ? OR g.nama ILIKE ?)`
		args = append(args, q, q, q)
	}

	if status != "" && status != "all" {
		if status == model.MagangBerlangsung {
			query += ` AND m.status IN (?, ?)`
			args = append(args, model.MagangBerlangsung, model.MagangDiterima)
		} else {
			query += ` AND m.status = ?`
			args = append(args, status)
		}
	}

	query += ` ORDER BY m.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	query += ` OFFSET ?`
	args = append(args, offset)

	var rows []model.MagangRingkasan
	err := r.db.Raw(query, args...).Scan(&rows).Error
	return rows, err
}

// StatsByGuru menghitung blok statistik daftar bimbingan guru.
func (r *magangRepository) StatsByGuru(guruID uuid.UUID) (*model.MagangGuruStats, error) {
	var stats model.MagangGuruStats
	base := r.db.Model(&model.Magang{}).Where("guru_id = ?", guruID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalSiswa).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status IN ?", model.StatusMagangAktif()).Count(&stats.Aktif).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.MagangSelesai).Count(&stats.Selesai).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.MagangPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindOwned mengambil 1 magang hanya jika dibimbing guru tersebut.
// Dipakai sebagai cek kepemilikan sebelum update/delete.
func (r *magangRepository) FindOwned(id, guruID uuid.UUID) (*model.Magang, error) {
	var m model.Magang
	if err := r.db.Where("id = ? AND guru_id = ?", id, guruID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// AdaMagangAktifDiGuru melaporkan apakah siswa masih punya magang yang belum
// berakhir (selain selesai/dibatalkan) di bawah guru tersebut.
func (r *magangRepository) AdaMagangAktifDiGuru(siswaID, guruID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Magang{}).
		Where("siswa_id = ? AND guru_id = ? AND status NOT IN (?, ?)",
			siswaID, guruID, model.MagangSelesai, model.MagangDibatalkan).
		Count(&count).Error
	return count > 0, err
}

// Create menyimpan penempatan magang yang dibuat guru.
func (r *magangRepository) Create(m *model.Magang) error {
	return r.db.Create(m).Error
}

// Update menyimpan perubahan magang. Aturan nilai_akhir sudah diterapkan
// di service sebelum sampai ke sini.
func (r *magangRepository) Update(m *model.Magang) error {
	// Save saja tidak cukup: nilai_akhir NULL harus ikut tertulis
	return r.db.Model(m).Updates(map[string]interface{}{
		"status":          m.Status,
		"tanggal_mulai":   m.TanggalMulai,
		"tanggal_selesai": m.TanggalSelesai,
		"nilai_akhir":     m.NilaiAkhir,
	}).Error
}

// Delete menghapus magang permanen. Ditolak jika sudah ada entri logbook;
// jumlah yang dihitung termasuk entri yang di-soft-delete (Unscoped).
func (r *magangRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var jumlahLogbook int64
		if err := tx.Unscoped().Model(&model.Logbook{}).Where("magang_id = ?", id).Count(&jumlahLogbook).Error; err != nil {
			return err
		}
		if err := model.BolehHapusMagang(jumlahLogbook); err != nil {
			return err
		}
		return tx.Delete(&model.Magang{}, "id = ?", id).Error
	})
}

// Daftarkan memproses pendaftaran mandiri siswa ke sebuah DUDI dalam satu
// transaksi: kuota 3, duplikat DUDI, DUDI aktif, lalu insert dengan guru
// pembimbing pertama yang tersedia (penunjukan sederhana, bukan algoritma
// pencocokan).
func (r *magangRepository) Daftarkan(siswaID, dudiID uuid.UUID) (*model.Magang, error) {
	var magang *model.Magang
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&model.Magang{}).Where("siswa_id = ?", siswaID).Count(&total).Error; err != nil {
			return err
		}

		var duplikat int64
		if err := tx.Model(&model.Magang{}).Where("siswa_id = ? AND dudi_id = ?", siswaID, dudiID).Count(&duplikat).Error; err != nil {
			return err
		}

		var dudi model.Dudi
		if err := tx.Where("id = ?", dudiID).First(&dudi).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrDudiTidakAktif
			}
			return err
		}

		if err := model.CekPendaftaranMagang(total, duplikat > 0, &dudi); err != nil {
			return err
		}

		var guru model.Guru
		if err := tx.Order("created_at").First(&guru).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrGuruBelumAda
			}
			return err
		}

		magang = &model.Magang{
			SiswaID: siswaID,
			DudiID:  dudiID,
			GuruID:  guru.ID,
			Status:  model.MagangPending,
		}
		return tx.Create(magang).Error
	})
	if err != nil {
		return nil, err
	}
	return magang, nil
}
