package repository

import (
	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository mendefinisikan kontrak operasi database untuk autentikasi
// dan resolusi profil role (user -> siswa/guru).
type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindSiswaByUserID(userID uuid.UUID) (*model.Siswa, error)
	FindGuruByUserID(userID uuid.UUID) (*model.Guru, error)
	FindAllSiswa() ([]model.Siswa, error)
}

// userRepository adalah implementasi konkret UserRepository berbasis GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository membuat instance baru userRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

// FindByEmail mencari user berdasarkan email (digunakan saat login).
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID mengambil user berdasarkan ID (dipakai endpoint introspeksi /me).
func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindSiswaByUserID mencari profil siswa yang terhubung ke user tertentu.
// Semua endpoint siswa memakai ini untuk menerjemahkan token -> siswa_id.
func (r *userRepository) FindSiswaByUserID(userID uuid.UUID) (*model.Siswa, error) {
	var s model.Siswa
	if err := r.db.Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindGuruByUserID mencari profil guru yang terhubung ke user tertentu.
func (r *userRepository) FindGuruByUserID(userID uuid.UUID) (*model.Guru, error) {
	var g model.Guru
	if err := r.db.Where("user_id = ?", userID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// FindAllSiswa mengambil seluruh siswa (daftar calon bimbingan untuk guru),
// diurutkan berdasarkan nama.
func (r *userRepository) FindAllSiswa() ([]model.Siswa, error) {
	var siswa []model.Siswa
	err := r.db.Order("nama").Find(&siswa).Error
	return siswa, err
}
