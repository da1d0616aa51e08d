package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User merepresentasikan akun pengguna portal (admin, siswa, guru, dudi).
// Role adalah tag tertutup yang menentukan tabel profil mana yang berlaku.
type User struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"unique;not null" json:"email"`
	Password        string     `gorm:"not null" json:"-"`
	Role            string     `gorm:"type:varchar(10);not null;check:role IN ('admin','siswa','guru','dudi')" json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Siswa adalah profil murid. Dibuat saat user terdaftar dengan role=siswa,
// dihapus saat role berpindah ke role lain.
type Siswa struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Nama      string    `gorm:"not null" json:"nama"`
	NIS       string    `gorm:"unique;not null;column:nis" json:"nis"`
	Kelas     string    `json:"kelas"`
	Jurusan   string    `json:"jurusan"`
	Alamat    string    `json:"alamat"`
	Telepon   string    `json:"telepon"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Siswa) TableName() string { return "siswa" }

// Guru adalah profil guru pembimbing.
type Guru struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Nama      string    `gorm:"not null" json:"nama"`
	NIP       string    `gorm:"unique;not null;column:nip" json:"nip"`
	Alamat    string    `json:"alamat"`
	Telepon   string    `json:"telepon"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Guru) TableName() string { return "guru" }

// Dudi merepresentasikan perusahaan mitra (Dunia Usaha / Dunia Industri).
// UserID opsional: hanya terisi jika perusahaan punya akun login.
// Unique constraint di nama_perusahaan menutup celah dua create bersamaan
// dengan nama yang sama.
type Dudi struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	NamaPerusahaan  string     `gorm:"unique;not null" json:"nama_perusahaan"`
	Alamat          string     `json:"alamat"`
	Telepon         string     `json:"telepon"`
	Email           string     `json:"email"`
	PenanggungJawab string     `json:"penanggung_jawab"`
	Status          string     `gorm:"type:varchar(10);not null;default:'pending';check:status IN ('aktif','nonaktif','pending')" json:"status"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Dudi) TableName() string { return "dudi" }

// Magang adalah penempatan magang: 1 siswa di 1 DUDI di bawah 1 guru pembimbing.
// NilaiAkhir hanya bermakna (dan hanya disimpan) saat status=selesai.
type Magang struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID        uuid.UUID  `gorm:"type:uuid;not null" json:"siswa_id"`
	Siswa          Siswa      `gorm:"foreignKey:SiswaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DudiID         uuid.UUID  `gorm:"type:uuid;not null" json:"dudi_id"`
	Dudi           Dudi       `gorm:"foreignKey:DudiID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	GuruID         uuid.UUID  `gorm:"type:uuid;not null" json:"guru_id"`
	Guru           Guru       `gorm:"foreignKey:GuruID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Status         string     `gorm:"type:varchar(15);not null;default:'pending';check:status IN ('pending','diterima','ditolak','berlangsung','selesai','dibatalkan')" json:"status"`
	TanggalMulai   *time.Time `gorm:"type:date" json:"tanggal_mulai"`
	TanggalSelesai *time.Time `gorm:"type:date" json:"tanggal_selesai"`
	NilaiAkhir     *float64   `json:"nilai_akhir"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Magang) TableName() string { return "magang" }

// Logbook adalah jurnal kegiatan harian siswa selama magang.
// Dihapus secara soft delete (deleted_at), bukan dihapus fisik.
// Setelah status_verifikasi=disetujui, entri tidak bisa diubah siswa lagi.
type Logbook struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MagangID         uuid.UUID      `gorm:"type:uuid;not null" json:"magang_id"`
	Magang           Magang         `gorm:"foreignKey:MagangID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Tanggal          time.Time      `gorm:"type:date;not null" json:"tanggal"`
	Kegiatan         string         `gorm:"type:text;not null" json:"kegiatan"`
	Kendala          *string        `gorm:"type:text" json:"kendala"`
	File             *string        `json:"file"`
	StatusVerifikasi string         `gorm:"type:varchar(10);not null;default:'pending';check:status_verifikasi IN ('pending','disetujui','ditolak')" json:"status_verifikasi"`
	CatatanGuru      *string        `gorm:"type:text" json:"catatan_guru"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Logbook) TableName() string { return "logbook" }

// SchoolSettings adalah baris tunggal identitas sekolah.
// Dibuat lazily dengan nilai placeholder saat pertama kali dibaca.
type SchoolSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LogoURL       *string   `json:"logo_url"`
	NamaSekolah   string    `json:"nama_sekolah"`
	Alamat        string    `json:"alamat"`
	Telepon       string    `json:"telepon"`
	Email         string    `json:"email"`
	Website       string    `json:"website"`
	KepalaSekolah string    `json:"kepala_sekolah"`
	NPSN          string    `gorm:"column:npsn" json:"npsn"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SchoolSettings) TableName() string { return "school_settings" }
