package repository

import (
	"errors"

	"magang-portal-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFilter adalah filter listing user di halaman admin.
type UserFilter struct {
	Search string // cocok di name/email (ILIKE)
	Role   string // "" atau "all" = semua role
	Limit  int
	Offset int
}

// UserAdminRepository mendefinisikan kontrak manajemen akun oleh admin.
// Create/Update/Delete berjalan dalam transaksi karena menyentuh tabel
// users sekaligus tabel profil role (siswa/guru/dudi).
type UserAdminRepository interface {
	FindAll(f UserFilter) ([]model.User, int64, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindSiswaProfile(userID uuid.UUID) (*model.Siswa, error)
	FindGuruProfile(userID uuid.UUID) (*model.Guru, error)
	FindDudiProfile(userID uuid.UUID) (*model.Dudi, error)
	CreateWithProfile(user *model.User, profil model.ProfilInput) error
	UpdateWithProfile(user *model.User, roleLama string, profil model.ProfilInput) error
	Delete(id uuid.UUID) error
}

type userAdminRepository struct {
	db *gorm.DB
}

// NewUserAdminRepository membuat instance baru userAdminRepository.
func NewUserAdminRepository(db *gorm.DB) UserAdminRepository {
	return &userAdminRepository{db}
}

// FindAll mengambil daftar user dengan search/filter role dan pagination.
// Total dihitung sebelum limit/offset untuk kebutuhan pagination di client.
func (r *userAdminRepository) FindAll(f UserFilter) ([]model.User, int64, error) {
	q := r.db.Model(&model.User{})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if f.Role != "" && f.Role != "all" {
		q = q.Where("role = ?", f.Role)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	q = q.Offset(f.Offset)

	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindByID mengambil 1 user berdasarkan id.
func (r *userAdminRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindSiswaProfile mengambil profil siswa milik sebuah user (nil jika tidak ada).
func (r *userAdminRepository) FindSiswaProfile(userID uuid.UUID) (*model.Siswa, error) {
	var s model.Siswa
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindGuruProfile mengambil profil guru milik sebuah user (nil jika tidak ada).
func (r *userAdminRepository) FindGuruProfile(userID uuid.UUID) (*model.Guru, error) {
	var g model.Guru
	err := r.db.Where("user_id = ?", userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindDudiProfile mengambil profil DUDI milik sebuah user (nil jika tidak ada).
func (r *userAdminRepository) FindDudiProfile(userID uuid.UUID) (*model.Dudi, error) {
	var d model.Dudi
	err := r.db.Where("user_id = ?", userID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// cekEmailUnik memastikan email belum dipakai user lain.
func cekEmailUnik(tx *gorm.DB, email string, kecuali *uuid.UUID) error {
	q := tx.Model(&model.User{}).Where("email = ?", email)
	if kecuali != nil {
		q = q.Where("id <> ?", *kecuali)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return model.ErrEmailTerdaftar
	}
	return nil
}

// cekNISUnik memastikan NIS belum dipakai siswa lain.
func cekNISUnik(tx *gorm.DB, nis string, kecualiUser *uuid.UUID) error {
	q := tx.Model(&model.Siswa{}).Where("nis = ?", nis)
	if kecualiUser != nil {
		q = q.Where("user_id <> ?", *kecualiUser)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return model.ErrNISTerdaftar
	}
	return nil
}

// cekNIPUnik memastikan NIP belum dipakai guru lain.
func cekNIPUnik(tx *gorm.DB, nip string, kecualiUser *uuid.UUID) error {
	q := tx.Model(&model.Guru{}).Where("nip = ?", nip)
	if kecualiUser != nil {
		q = q.Where("user_id <> ?", *kecualiUser)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return model.ErrNIPTerdaftar
	}
	return nil
}

// CreateWithProfile membuat user baru beserta baris profil role-nya dalam
// satu transaksi. Duplikasi email/NIS/NIP dikembalikan sebagai error aturan
// bisnis, bukan error constraint mentah.
func (r *userAdminRepository) CreateWithProfile(user *model.User, profil model.ProfilInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := cekEmailUnik(tx, user.Email, nil); err != nil {
			return err
		}

		switch user.Role {
		case model.RoleSiswa:
			if err := cekNISUnik(tx, profil.Siswa.NIS, nil); err != nil {
				return err
			}
		case model.RoleGuru:
			if err := cekNIPUnik(tx, profil.Guru.NIP, nil); err != nil {
				return err
			}
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		switch user.Role {
		case model.RoleSiswa:
			profil.Siswa.UserID = user.ID
			return tx.Create(profil.Siswa).Error
		case model.RoleGuru:
			profil.Guru.UserID = user.ID
			return tx.Create(profil.Guru).Error
		case model.RoleDudi:
			profil.Dudi.UserID = &user.ID
			return tx.Create(profil.Dudi).Error
		}
		return nil
	})
}

// UpdateWithProfile menyimpan perubahan akun dan profilnya. Jika role
// berpindah, profil role baru di-upsert dan profil role lama dihapus agar
// tidak ada user dengan dua profil sekaligus.
func (r *userAdminRepository) UpdateWithProfile(user *model.User, roleLama string, profil model.ProfilInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := cekEmailUnik(tx, user.Email, &user.ID); err != nil {
			return err
		}

		switch {
		case user.Role == model.RoleSiswa && profil.Siswa != nil:
			if err := cekNISUnik(tx, profil.Siswa.NIS, &user.ID); err != nil {
				return err
			}
		case user.Role == model.RoleGuru && profil.Guru != nil:
			if err := cekNIPUnik(tx, profil.Guru.NIP, &user.ID); err != nil {
				return err
			}
		}

		if err := tx.Save(user).Error; err != nil {
			return err
		}

		if err := upsertProfil(tx, user, profil); err != nil {
			return err
		}

		// Bersihkan profil role lama setelah perpindahan role.
		switch model.ProfilUsang(roleLama, user.Role) {
		case model.RoleSiswa:
			return tx.Where("user_id = ?", user.ID).Delete(&model.Siswa{}).Error
		case model.RoleGuru:
			return tx.Where("user_id = ?", user.ID).Delete(&model.Guru{}).Error
		case model.RoleDudi:
			return tx.Where("user_id = ?", user.ID).Delete(&model.Dudi{}).Error
		}
		return nil
	})
}

// upsertProfil memperbarui baris profil role aktif, atau membuatnya jika
// belum ada (kasus perpindahan role). Payload tanpa sub-objek profil berarti
// update akun saja: baris profil lama dibiarkan.
func upsertProfil(tx *gorm.DB, user *model.User, profil model.ProfilInput) error {
	switch {
	case user.Role == model.RoleSiswa && profil.Siswa != nil:
		var ada model.Siswa
		err := tx.Where("user_id = ?", user.ID).First(&ada).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profil.Siswa.UserID = user.ID
			return tx.Create(profil.Siswa).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&ada).Updates(map[string]interface{}{
			"nama":    profil.Siswa.Nama,
			"nis":     profil.Siswa.NIS,
			"kelas":   profil.Siswa.Kelas,
			"jurusan": profil.Siswa.Jurusan,
			"alamat":  profil.Siswa.Alamat,
			"telepon": profil.Siswa.Telepon,
		}).Error

	case user.Role == model.RoleGuru && profil.Guru != nil:
		var ada model.Guru
		err := tx.Where("user_id = ?", user.ID).First(&ada).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profil.Guru.UserID = user.ID
			return tx.Create(profil.Guru).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&ada).Updates(map[string]interface{}{
			"nama":    profil.Guru.Nama,
			"nip":     profil.Guru.NIP,
			"alamat":  profil.Guru.Alamat,
			"telepon": profil.Guru.Telepon,
		}).Error

	case user.Role == model.RoleDudi && profil.Dudi != nil:
		var ada model.Dudi
		err := tx.Where("user_id = ?", user.ID).First(&ada).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profil.Dudi.UserID = &user.ID
			return tx.Create(profil.Dudi).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&ada).Updates(map[string]interface{}{
			"nama_perusahaan":  profil.Dudi.NamaPerusahaan,
			"alamat":           profil.Dudi.Alamat,
			"telepon":          profil.Dudi.Telepon,
			"email":            profil.Dudi.Email,
			"penanggung_jawab": profil.Dudi.PenanggungJawab,
			"status":           profil.Dudi.Status,
		}).Error
	}
	return nil
}

// Delete menghapus user beserta seluruh baris profil role-nya dalam satu
// transaksi, supaya tidak ada profil yatim tertinggal.
func (r *userAdminRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Siswa{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Guru{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Dudi{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
