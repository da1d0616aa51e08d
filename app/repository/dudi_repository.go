package repository

import (
	"errors"

	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DudiRepository mendefinisikan kontrak operasi database untuk perusahaan
// mitra (DUDI), termasuk guard aturan bisnis yang harus atomik dengan
// tulisannya (cek nama unik, cek magang aktif sebelum hapus).
type DudiRepository interface {
	FindAll(search string, limit, offset int) ([]model.DudiRingkasan, error)
	FindByID(id uuid.UUID) (*model.DudiRingkasan, error)
	Stats() (*model.DudiStats, error)
	Create(d *model.Dudi) error
	Update(d *model.Dudi) error
	Delete(id uuid.UUID) error
	FindAktifUntukSiswa(siswaID uuid.UUID, search string, limit, offset int) ([]model.DudiUntukSiswa, int64, error)
	FindByGuru(guruID uuid.UUID, search string, limit, offset int) ([]model.DudiRingkasan, error)
}

type dudiRepository struct {
	db *gorm.DB
}

// NewDudiRepository membuat instance baru dudiRepository.
func NewDudiRepository(db *gorm.DB) DudiRepository {
	return &dudiRepository{db}
}

// FindAll mengambil daftar DUDI beserta jumlah siswa magang aktif per baris.
// Search case-insensitive pada nama perusahaan, alamat, penanggung jawab,
// email, dan telepon. limit<=0 menonaktifkan klausa LIMIT.
func (r *dudiRepository) FindAll(search string, limit, offset int) ([]model.DudiRingkasan, error) {
	query := `
		SELECT d.*, COUNT(m.id) AS siswa_magang_count
		FROM dudi d
		LEFT JOIN magang m ON d.id = m.dudi_id AND m.status IN ('berlangsung', 'diterima')`
	args := []interface{}{}

	if search != "" {
		q := "%" + search + "%"
		query += ` WHERE (d.nama_perusahaan ILIKE ? OR d.alamat ILIKE ? OR d.penanggung_jawab ILIKE ? OR d.email ILIKE ? OR d.telepon ILIKE ?)`
		args = append(args, q, q, q, q, q)
	}

	query += ` GROUP BY d.id ORDER BY d.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	query += ` OFFSET ?`
	args = append(args, offset)

	var rows []model.DudiRingkasan
	err := r.db.Raw(query, args...).Scan(&rows).Error
	return rows, err
}

// FindByID mengambil detail 1 DUDI beserta jumlah siswa magang aktifnya.
func (r *dudiRepository) FindByID(id uuid.UUID) (*model.DudiRingkasan, error) {
	var row model.DudiRingkasan
	res := r.db.Raw(`
		SELECT d.*, COUNT(m.id) AS siswa_magang_count
		FROM dudi d
		LEFT JOIN magang m ON d.id = m.dudi_id AND m.status IN ('berlangsung', 'diterima')
		WHERE d.id = ?
		GROUP BY d.id`, id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// Stats menghitung blok statistik untuk halaman DUDI admin.
func (r *dudiRepository) Stats() (*model.DudiStats, error) {
	var stats model.DudiStats
	if err := r.db.Model(&model.Dudi{}).Count(&stats.TotalDudi).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Dudi{}).Where("status = ?", model.DudiAktif).Count(&stats.DudiAktif).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Dudi{}).Where("status = ?", model.DudiNonaktif).Count(&stats.DudiTidakAktif).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Magang{}).Where("status IN ?", model.StatusMagangAktif()).Count(&stats.TotalSiswaMagang).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Create menyimpan DUDI baru. Cek nama perusahaan dilakukan di dalam
// transaksi yang sama dengan insert; unique constraint di kolom menjadi
// jaring pengaman terakhir untuk dua create bersamaan.
func (r *dudiRepository) Create(d *model.Dudi) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Dudi{}).Where("nama_perusahaan = ?", d.NamaPerusahaan).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return model.ErrNamaPerusahaan
		}
		return tx.Create(d).Error
	})
}

// Update memperbarui DUDI. Cek nama unik mengecualikan baris miliknya sendiri.
func (r *dudiRepository) Update(d *model.Dudi) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Dudi{}).
			Where("nama_perusahaan = ? AND id != ?", d.NamaPerusahaan, d.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return model.ErrNamaPerusahaan
		}
		return tx.Save(d).Error
	})
}

// Delete menghapus DUDI permanen. Ditolak jika masih ada magang dengan
// status berlangsung/diterima.
func (r *dudiRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var aktif int64
		if err := tx.Model(&model.Magang{}).
			Where("dudi_id = ? AND status IN ?", id, model.StatusMagangAktif()).
			Count(&aktif).Error; err != nil {
			return err
		}
		if err := model.BolehHapusDudi(aktif); err != nil {
			return err
		}
		return tx.Delete(&model.Dudi{}, "id = ?", id).Error
	})
}

// FindAktifUntukSiswa mengambil katalog DUDI aktif untuk siswa, ditandai
// apakah siswa tersebut sudah mendaftar. Mengembalikan juga total baris
// untuk pagination.
func (r *dudiRepository) FindAktifUntukSiswa(siswaID uuid.UUID, search string, limit, offset int) ([]model.DudiUntukSiswa, int64, error) {
	query := `
		SELECT d.*,
		       CASE WHEN m.id IS NOT NULL THEN true ELSE false END AS sudah_daftar,
		       m.status AS status_pendaftaran
		FROM dudi d
		LEFT JOIN magang m ON d.id = m.dudi_id AND m.siswa_id = ?
		WHERE d.status = 'aktif'`
	args := []interface{}{siswaID}

	countQuery := `SELECT COUNT(*) FROM dudi d WHERE d.status = 'aktif'`
	countArgs := []interface{}{}

	if search != "" {
		q := "%" + search + "%"
		clause := ` AND (d.nama_perusahaan ILIKE ? OR d.alamat ILIKE ? OR d.penanggung_jawab ILIKE ?)`
		query += clause
		countQuery += clause
		args = append(args, q, q, q)
		countArgs = append(countArgs, q, q, q)
	}

	query += ` ORDER BY d.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	query += ` OFFSET ?`
	args = append(args, offset)

	var rows []model.DudiUntukSiswa
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Raw(countQuery, countArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByGuru mengambil DUDI aktif yang menampung siswa bimbingan guru
// tersebut, beserta jumlah siswa bimbingannya per DUDI.
func (r *dudiRepository) FindByGuru(guruID uuid.UUID, search string, limit, offset int) ([]model.DudiRingkasan, error) {
	query := `
		SELECT d.*, COUNT(DISTINCT m.siswa_id) AS siswa_magang_count
		FROM dudi d
		JOIN magang m ON d.id = m.dudi_id
		WHERE m.guru_id = ? AND d.status = 'aktif'`
	args := []interface{}{guruID}

	if search != "" {
		q := "%" + search + "%"
		query += ` AND (d.nama_perusahaan ILIKE ? OR d.alamat ILIKE ? OR d.penanggung_jawab ILIKE ? OR d.email ILIKE ? OR d.telepon ILIKE ?)`
		args = append(args, q, q, q, q, q)
	}

	query += ` GROUP BY d.id ORDER BY d.created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	query += ` OFFSET ?`
	args = append(args, offset)

	var rows []model.DudiRingkasan
	err := r.db.Raw(query, args...).Scan(&rows).Error
	return rows, err
}

// ErrNotFound membungkus gorm.ErrRecordNotFound agar service tidak perlu
// import gorm hanya untuk cek not-found.
var ErrNotFound = gorm.ErrRecordNotFound

// IsNotFound melaporkan apakah err adalah kondisi data tidak ditemukan.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
