package database

import (
	"log"

	"magang-portal-backend/app/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil ini sekali di main.go setelah InitDB berhasil.
// Semua seeder idempotent: aman dijalankan berulang kali.
func RunSeeders(db *gorm.DB) {
	SeedAdmin(db)
	SeedGuru(db)
	SeedSiswa(db)
	SeedSchoolSettings(db)
}

func hashPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("[SEEDER] Gagal hash password: %v", err)
	}
	return string(hash)
}

// ===============================
//  SEED ADMIN
// ===============================

// SeedAdmin menambahkan 1 akun admin awal supaya portal bisa langsung
// dikelola setelah deploy.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Admin sudah ada, skip seeding admin.")
		return
	}

	admin := model.User{
		Name:     "Administrator",
		Email:    "admin@sekolah.sch.id",
		Password: hashPassword("admin123"),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed admin: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed admin: admin@sekolah.sch.id")
}

// ===============================
//  SEED GURU
// ===============================

// SeedGuru menambahkan 1 guru pembimbing awal. Tanpa guru, pendaftaran
// magang mandiri siswa akan selalu gagal.
func SeedGuru(db *gorm.DB) {
	var count int64
	db.Model(&model.Guru{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Guru sudah ada, skip seeding guru.")
		return
	}

	user := model.User{
		Name:     "Budi Santoso",
		Email:    "guru@sekolah.sch.id",
		Password: hashPassword("guru123"),
		Role:     model.RoleGuru,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed user guru: %v", err)
	}

	guru := model.Guru{
		UserID:  user.ID,
		Nama:    user.Name,
		NIP:     "196807051994031004",
		Alamat:  "Jl. Pendidikan No. 1",
		Telepon: "081234567890",
	}
	if err := db.Create(&guru).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed profil guru: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed guru: guru@sekolah.sch.id")
}

// ===============================
//  SEED SISWA
// ===============================

// SeedSiswa menambahkan 1 siswa contoh untuk uji alur pendaftaran magang.
func SeedSiswa(db *gorm.DB) {
	var count int64
	db.Model(&model.Siswa{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Siswa sudah ada, skip seeding siswa.")
		return
	}

	user := model.User{
		Name:     "Ani Lestari",
		Email:    "siswa@sekolah.sch.id",
		Password: hashPassword("siswa123"),
		Role:     model.RoleSiswa,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed user siswa: %v", err)
	}

	siswa := model.Siswa{
		UserID:  user.ID,
		Nama:    user.Name,
		NIS:     "2024001",
		Kelas:   "XII RPL 1",
		Jurusan: "Rekayasa Perangkat Lunak",
		Alamat:  "Jl. Melati No. 5",
		Telepon: "081298765432",
	}
	if err := db.Create(&siswa).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed profil siswa: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed siswa: siswa@sekolah.sch.id")
}

// ===============================
//  SEED SCHOOL SETTINGS
// ===============================

// SeedSchoolSettings menyiapkan baris tunggal identitas sekolah dengan
// nilai placeholder.
func SeedSchoolSettings(db *gorm.DB) {
	var count int64
	db.Model(&model.SchoolSettings{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Pengaturan sekolah sudah ada, skip seeding settings.")
		return
	}

	settings := model.SchoolSettings{
		NamaSekolah:   "Nama Sekolah Belum Diatur",
		Alamat:        "Alamat Belum Diatur",
		Telepon:       "Telepon Belum Diatur",
		Email:         "email@sekolah.sch.id",
		Website:       "https://sekolah.sch.id",
		KepalaSekolah: "Kepala Sekolah Belum Diatur",
		NPSN:          "NPSN Belum Diatur",
	}
	if err := db.Create(&settings).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed pengaturan sekolah: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed pengaturan sekolah.")
}
