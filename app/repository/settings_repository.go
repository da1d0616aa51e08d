package repository

import (
	"errors"

	"magang-portal-backend/app/model"

	"gorm.io/gorm"
)

// SettingsRepository mengelola baris tunggal identitas sekolah.
type SettingsRepository interface {
	GetOrCreate() (*model.SchoolSettings, error)
	Update(s *model.SchoolSettings) error
	SetLogo(logoURL *string) (*model.SchoolSettings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository membuat instance baru settingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db}
}

// GetOrCreate mengambil baris pengaturan; jika belum ada, dibuat dengan
// nilai placeholder supaya halaman pengaturan tidak pernah kosong.
func (r *settingsRepository) GetOrCreate() (*model.SchoolSettings, error) {
	var s model.SchoolSettings
	err := r.db.Order("created_at ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.SchoolSettings{
			NamaSekolah:   "Nama Sekolah Belum Diatur",
			Alamat:        "Alamat Belum Diatur",
			Telepon:       "Telepon Belum Diatur",
			Email:         "email@sekolah.sch.id",
			Website:       "https://sekolah.sch.id",
			KepalaSekolah: "Kepala Sekolah Belum Diatur",
			NPSN:          "NPSN Belum Diatur",
		}
		if err := r.db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update menyimpan perubahan identitas sekolah.
func (r *settingsRepository) Update(s *model.SchoolSettings) error {
	return r.db.Save(s).Error
}

// SetLogo menetapkan (atau menghapus, dengan nil) URL logo sekolah.
func (r *settingsRepository) SetLogo(logoURL *string) (*model.SchoolSettings, error) {
	s, err := r.GetOrCreate()
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(s).Update("logo_url", logoURL).Error; err != nil {
		return nil, err
	}
	s.LogoURL = logoURL
	return s, nil
}
