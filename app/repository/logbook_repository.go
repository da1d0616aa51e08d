package repository

import (
	"time"

	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogbookFilter adalah filter listing jurnal milik siswa.
type LogbookFilter struct {
	Status string // "all" atau salah satu status verifikasi
	Bulan  int    // 0 = semua bulan
	Tahun  int    // 0 = semua tahun
	Limit  int
	Offset int
}

// LogbookGuruFilter adalah filter listing jurnal di halaman verifikasi guru.
type LogbookGuruFilter struct {
	Status         string
	Hari           int
	Bulan          int
	Tahun          int
	TanggalMulai   string // YYYY-MM-DD, inklusif
	TanggalSelesai string
	SiswaID        *uuid.UUID
	Limit          int // 0 = tanpa limit; service meng-clamp 1..100
}

// LogbookRepository mendefinisikan kontrak operasi database untuk jurnal
// harian. Soft delete ditangani GORM lewat kolom deleted_at.
type LogbookRepository interface {
	FindBySiswa(siswaID uuid.UUID, f LogbookFilter) ([]model.Logbook, error)
	FindDetail(id, siswaID uuid.UUID) (*model.Logbook, error)
	MagangAktif(siswaID uuid.UUID) (*model.Magang, error)
	Create(l *model.Logbook) error
	FindMilikUser(id, userID uuid.UUID) (*model.Logbook, error)
	Update(l *model.Logbook) error
	SoftDelete(id uuid.UUID) error
	FindUntukGuru(guruID uuid.UUID, f LogbookGuruFilter) ([]model.LogbookGuru, error)
	FindBimbingan(id, guruID uuid.UUID) (*model.Logbook, error)
	Verifikasi(id uuid.UUID, status string, catatan *string) (*model.Logbook, error)
}

type logbookRepository struct {
	db *gorm.DB
}

// NewLogbookRepository membuat instance baru logbookRepository.
func NewLogbookRepository(db *gorm.DB) LogbookRepository {
	return &logbookRepository{db}
}

// FindBySiswa mengambil jurnal milik seorang siswa (lintas magang),
// terbaru dulu.
func (r *logbookRepository) FindBySiswa(siswaID uuid.UUID, f LogbookFilter) ([]model.Logbook, error) {
	q := r.db.Model(&model.Logbook{}).
		Joins("JOIN magang m ON logbook.magang_id = m.id").
		Where("m.siswa_id = ?", siswaID)

	if f.Status != "" && f.Status != "all" {
		q = q.Where("logbook.status_verifikasi = ?", f.Status)
	}
	if f.Bulan > 0 {
		q = q.Where("EXTRACT(MONTH FROM logbook.tanggal) = ?", f.Bulan)
	}
	if f.Tahun > 0 {
		q = q.Where("EXTRACT(YEAR FROM logbook.tanggal) = ?", f.Tahun)
	}

	q = q.Order("logbook.tanggal DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	q = q.Offset(f.Offset)

	var rows []model.Logbook
	err := q.Find(&rows).Error
	return rows, err
}

// FindDetail mengambil 1 jurnal hanya jika milik siswa tersebut.
func (r *logbookRepository) FindDetail(id, siswaID uuid.UUID) (*model.Logbook, error) {
	var l model.Logbook
	err := r.db.
		Where("id = ? AND magang_id IN (?)",
			id, r.db.Model(&model.Magang{}).Select("id").Where("siswa_id = ?", siswaID)).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// MagangAktif mencari magang aktif (berlangsung/diterima) terbaru milik
// siswa; syarat wajib sebelum membuat jurnal.
func (r *logbookRepository) MagangAktif(siswaID uuid.UUID) (*model.Magang, error) {
	var m model.Magang
	err := r.db.
		Where("siswa_id = ? AND status IN ?", siswaID, model.StatusMagangAktif()).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create menyimpan jurnal baru (status verifikasi awal: pending).
func (r *logbookRepository) Create(l *model.Logbook) error {
	return r.db.Create(l).Error
}

// FindMilikUser mengambil 1 jurnal hanya jika milik siswa di balik user
// tersebut. Dipakai sebagai cek kepemilikan sebelum edit/hapus.
func (r *logbookRepository) FindMilikUser(id, userID uuid.UUID) (*model.Logbook, error) {
	var l model.Logbook
	err := r.db.
		Joins("JOIN magang m ON logbook.magang_id = m.id").
		Joins("JOIN siswa s ON m.siswa_id = s.id").
		Where("logbook.id = ? AND s.user_id = ?", id, userID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Update menyimpan perubahan jurnal (sudah termasuk reset status ke pending).
func (r *logbookRepository) Update(l *model.Logbook) error {
	return r.db.Save(l).Error
}

// SoftDelete menandai jurnal terhapus (deleted_at), tidak menghapus fisik.
func (r *logbookRepository) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&model.Logbook{}, "id = ?", id).Error
}

// FindUntukGuru mengambil jurnal seluruh siswa bimbingan seorang guru
// dengan filter opsional status/tanggal/siswa.
func (r *logbookRepository) FindUntukGuru(guruID uuid.UUID, f LogbookGuruFilter) ([]model.LogbookGuru, error) {
	query := `
		SELECT l.*,
		       s.id AS siswa_id, s.nama AS nama_siswa, s.nis, s.kelas, s.jurusan,
		       u.email AS email_siswa
		FROM logbook l
		LEFT JOIN magang m ON l.magang_id = m.id
		LEFT JOIN siswa s ON m.siswa_id = s.id
		LEFT JOIN users u ON s.user_id = u.id
		WHERE l.deleted_at IS NULL AND m.guru_id = ?`
	args := []interface{}{guruID}

	if f.Status != "" && f.Status != "all" {
		query += ` AND l.status_verifikasi = ?`
		args = append(args, f.Status)
	}
	if f.Hari > 0 {
		query += ` AND EXTRACT(DAY FROM l.tanggal) = ?`
		args = append(args, f.Hari)
	}
	if f.Bulan > 0 {
		query += ` AND EXTRACT(MONTH FROM l.tanggal) = ?`
		args = append(args, f.Bulan)
	}
	if f.Tahun > 0 {
		query += ` AND EXTRACT(YEAR FROM l.tanggal) = ?`
		args = append(args, f.Tahun)
	}
	if f.TanggalMulai != "" {
		query += ` AND l.tanggal >= ?`
		args = append(args, f.TanggalMulai)
	}
	if f.TanggalSelesai != "" {
		query += ` AND l.tanggal <= ?`
		args = append(args, f.TanggalSelesai)
	}
	if f.SiswaID != nil {
		query += ` AND s.id = ?`
		args = append(args, *f.SiswaID)
	}

	query += ` ORDER BY l.created_at DESC NULLS LAST, l.tanggal DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	var rows []model.LogbookGuru
	err := r.db.Raw(query, args...).Scan(&rows).Error
	return rows, err
}

// FindBimbingan mengambil 1 jurnal hanya jika siswa pemiliknya dibimbing
// guru tersebut.
func (r *logbookRepository) FindBimbingan(id, guruID uuid.UUID) (*model.Logbook, error) {
	var l model.Logbook
	err := r.db.
		Joins("JOIN magang m ON logbook.magang_id = m.id").
		Where("logbook.id = ? AND m.guru_id = ?", id, guruID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Verifikasi menetapkan status verifikasi dan catatan guru. Tanpa cek
// status sebelumnya: guru boleh memverifikasi ulang kapan saja.
func (r *logbookRepository) Verifikasi(id uuid.UUID, status string, catatan *string) (*model.Logbook, error) {
	err := r.db.Model(&model.Logbook{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status_verifikasi": status,
			"catatan_guru":      catatan,
			"updated_at":        time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}

	var l model.Logbook
	if err := r.db.Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}
