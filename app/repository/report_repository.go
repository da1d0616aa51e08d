package repository

import (
	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRepository mengumpulkan query agregat untuk halaman dashboard
// ketiga role dan halaman profil siswa.
type ReportRepository interface {
	AdminDashboard() (*model.AdminDashboard, error)
	GuruDashboard(guruID uuid.UUID) (*model.GuruDashboard, error)
	SiswaDashboard(siswaID uuid.UUID) (*model.SiswaDashboard, error)
	SiswaProfil(userID uuid.UUID) (*model.SiswaProfil, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository membuat instance baru reportRepository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

// AdminDashboard mengambil statistik sekolah + 3 daftar terbaru sekaligus.
func (r *reportRepository) AdminDashboard() (*model.AdminDashboard, error) {
	var d model.AdminDashboard

	if err := r.db.Model(&model.Siswa{}).Count(&d.Stats.TotalSiswa).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Dudi{}).Count(&d.Stats.TotalDudi).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Magang{}).
		Where("status IN ?", model.StatusMagangAktif()).
		Count(&d.Stats.SiswaMagang).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Logbook{}).
		Where("tanggal = CURRENT_DATE").
		Count(&d.Stats.LogbookHariIni).Error; err != nil {
		return nil, err
	}

	err := r.db.Raw(`
		SELECT s.nama AS siswa_nama, dd.nama_perusahaan, m.status,
		       m.tanggal_mulai, m.created_at
		FROM magang m
		LEFT JOIN siswa s ON m.siswa_id = s.id
		LEFT JOIN dudi dd ON m.dudi_id = dd.id
		ORDER BY m.created_at DESC
		LIMIT 5`).Scan(&d.RecentMagang).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT d.nama_perusahaan, d.alamat, d.telepon,
		       COUNT(m.id) AS siswa_count
		FROM dudi d
		LEFT JOIN magang m ON m.dudi_id = d.id AND m.status IN ?
		WHERE d.status = ?
		GROUP BY d.id, d.nama_perusahaan, d.alamat, d.telepon
		ORDER BY siswa_count DESC, d.created_at DESC
		LIMIT 5`, model.StatusMagangAktif(), model.DudiAktif).Scan(&d.ActiveDudi).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT l.id, l.tanggal, l.kegiatan, l.kendala, l.status_verifikasi,
		       l.created_at, s.nama AS nama_siswa
		FROM logbook l
		LEFT JOIN magang m ON l.magang_id = m.id
		LEFT JOIN siswa s ON m.siswa_id = s.id
		WHERE l.deleted_at IS NULL
		ORDER BY l.created_at DESC
		LIMIT 5`).Scan(&d.RecentLogbook).Error
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// GuruDashboard mengambil statistik bimbingan seorang guru + daftar
// pendaftaran dan DUDI partner terbarunya.
func (r *reportRepository) GuruDashboard(guruID uuid.UUID) (*model.GuruDashboard, error) {
	var d model.GuruDashboard

	if err := r.db.Model(&model.Magang{}).
		Where("guru_id = ?", guruID).
		Distinct("siswa_id").
		Count(&d.Stats.TotalSiswaBimbingan).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Magang{}).
		Where("guru_id = ?", guruID).
		Distinct("dudi_id").
		Count(&d.Stats.TotalDudiPartner).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Magang{}).
		Where("guru_id = ? AND status IN ?", guruID, model.StatusMagangAktif()).
		Count(&d.Stats.SiswaMagang).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Logbook{}).
		Joins("JOIN magang m ON logbook.magang_id = m.id").
		Where("m.guru_id = ? AND logbook.tanggal = CURRENT_DATE", guruID).
		Count(&d.Stats.LogbookHariIni).Error; err != nil {
		return nil, err
	}

	err := r.db.Raw(`
		SELECT s.nama AS siswa_nama, dd.nama_perusahaan, m.status,
		       m.tanggal_mulai, m.created_at
		FROM magang m
		LEFT JOIN siswa s ON m.siswa_id = s.id
		LEFT JOIN dudi dd ON m.dudi_id = dd.id
		WHERE m.guru_id = ?
		ORDER BY m.created_at DESC
		LIMIT 5`, guruID).Scan(&d.RecentMagang).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT d.nama_perusahaan, d.alamat, d.telepon,
		       COUNT(m.id) AS siswa_count
		FROM dudi d
		JOIN magang m ON m.dudi_id = d.id AND m.guru_id = ?
		GROUP BY d.id, d.nama_perusahaan, d.alamat, d.telepon
		ORDER BY siswa_count DESC, d.created_at DESC
		LIMIT 5`, guruID).Scan(&d.ActiveDudi).Error
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// SiswaDashboard mengambil magang berjalan, 5 jurnal terakhir, dan
// rekap status jurnal milik seorang siswa.
func (r *reportRepository) SiswaDashboard(siswaID uuid.UUID) (*model.SiswaDashboard, error) {
	var d model.SiswaDashboard

	var magang model.MagangSiswa
	res := r.db.Raw(`
		SELECT m.id, m.status, m.tanggal_mulai, m.tanggal_selesai, m.nilai_akhir,
		       dd.nama_perusahaan, dd.alamat AS alamat_dudi, g.nama AS guru_nama
		FROM magang m
		LEFT JOIN dudi dd ON m.dudi_id = dd.id
		LEFT JOIN guru g ON m.guru_id = g.id
		WHERE m.siswa_id = ? AND m.status IN ?
		ORDER BY m.created_at DESC
		LIMIT 1`, siswaID, model.StatusMagangAktif()).Scan(&magang)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		d.Magang = &magang
	}

	err := r.db.Model(&model.Logbook{}).
		Joins("JOIN magang m ON logbook.magang_id = m.id").
		Where("m.siswa_id = ?", siswaID).
		Order("logbook.tanggal DESC").
		Limit(5).
		Find(&d.Jurnal).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT COUNT(*) AS total_jurnal,
		       COUNT(*) FILTER (WHERE l.status_verifikasi = 'disetujui') AS disetujui,
		       COUNT(*) FILTER (WHERE l.status_verifikasi = 'pending') AS pending,
		       COUNT(*) FILTER (WHERE l.status_verifikasi = 'ditolak') AS ditolak
		FROM logbook l
		JOIN magang m ON l.magang_id = m.id
		WHERE l.deleted_at IS NULL AND m.siswa_id = ?`, siswaID).Scan(&d.Stats).Error
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// SiswaProfil mengambil data diri siswa + magang utamanya (yang aktif lebih
// diprioritaskan dari yang selesai) + pemakaian kuota pendaftaran.
func (r *reportRepository) SiswaProfil(userID uuid.UUID) (*model.SiswaProfil, error) {
	var p model.SiswaProfil
	res := r.db.Raw(`
		SELECT s.id AS siswa_id, s.nama, s.nis, s.kelas, s.jurusan, s.alamat,
		       m.id AS magang_id, m.tanggal_mulai, m.tanggal_selesai,
		       m.nilai_akhir, m.status AS magang_status,
		       d.nama_perusahaan, d.alamat AS alamat_perusahaan
		FROM siswa s
		LEFT JOIN LATERAL (
			SELECT *
			FROM magang
			WHERE siswa_id = s.id AND status IN ('berlangsung','diterima','selesai')
			ORDER BY CASE status
				WHEN 'berlangsung' THEN 0
				WHEN 'diterima' THEN 1
				ELSE 2
			END, created_at DESC
			LIMIT 1
		) m ON TRUE
		LEFT JOIN dudi d ON m.dudi_id = d.id
		WHERE s.user_id = ?`, userID).Scan(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	if err := r.db.Model(&model.Magang{}).
		Where("siswa_id = ?", p.SiswaID).
		Count(&p.TotalPendaftaran).Error; err != nil {
		return nil, err
	}

	p.Status = model.StatusProfilSiswa(p.MagangStatus)
	p.MaxPendaftaran = model.BatasPendaftaranMagang
	return &p, nil
}
