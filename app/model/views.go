package model

import (
	"time"

	"github.com/google/uuid"
)

// Struct hasil query gabungan (join/aggregate) untuk kebutuhan listing dan
// dashboard. Bentuk kolom mengikuti response yang dikonsumsi frontend:
// baris data memakai snake_case, blok stats memakai camelCase.

// DudiRingkasan adalah baris DUDI untuk admin/guru, dengan jumlah siswa
// yang sedang magang aktif di sana.
type DudiRingkasan struct {
	Dudi             `gorm:"embedded"`
	SiswaMagangCount int64 `json:"siswa_magang_count"`
}

// DudiStats adalah blok statistik di atas tabel DUDI admin.
type DudiStats struct {
	TotalDudi        int64 `json:"totalDudi"`
	DudiAktif        int64 `json:"dudiAktif"`
	DudiTidakAktif   int64 `json:"dudiTidakAktif"`
	TotalSiswaMagang int64 `json:"totalSiswaMagang"`
}

// DudiUntukSiswa adalah baris DUDI aktif di katalog siswa, ditandai apakah
// siswa yang login sudah mendaftar di sana.
type DudiUntukSiswa struct {
	Dudi              `gorm:"embedded"`
	SudahDaftar       bool    `json:"sudah_daftar"`
	StatusPendaftaran *string `json:"status_pendaftaran"`
}

// MagangRingkasan adalah baris magang di daftar bimbingan guru,
// dilengkapi identitas siswa, DUDI, dan guru.
type MagangRingkasan struct {
	Magang         `gorm:"embedded"`
	SiswaNama      string `json:"siswa_nama"`
	SiswaNIS       string `gorm:"column:siswa_nis" json:"siswa_nis"`
	SiswaKelas     string `json:"siswa_kelas"`
	SiswaJurusan   string `json:"siswa_jurusan"`
	NamaPerusahaan string `json:"nama_perusahaan"`
	AlamatDudi     string `json:"alamat_dudi"`
	GuruNama       string `json:"guru_nama"`
}

// MagangGuruStats adalah blok statistik daftar bimbingan guru.
type MagangGuruStats struct {
	TotalSiswa int64 `json:"totalSiswa"`
	Aktif      int64 `json:"aktif"`
	Selesai    int64 `json:"selesai"`
	Pending    int64 `json:"pending"`
}

// LogbookGuru adalah baris jurnal di halaman verifikasi guru.
type LogbookGuru struct {
	Logbook    `gorm:"embedded"`
	SiswaID    uuid.UUID `json:"siswa_id"`
	NamaSiswa  string    `json:"nama_siswa"`
	NIS        string    `gorm:"column:nis" json:"nis"`
	Kelas      string    `json:"kelas"`
	Jurusan    string    `json:"jurusan"`
	EmailSiswa string    `json:"email_siswa"`
}

// ===============================
//  DASHBOARD
// ===============================

// AdminStats adalah kartu-kartu angka di dashboard admin.
type AdminStats struct {
	TotalSiswa     int64 `json:"totalSiswa"`
	TotalDudi      int64 `json:"totalDudi"`
	SiswaMagang    int64 `json:"siswaMagang"`
	LogbookHariIni int64 `json:"logbookHariIni"`
}

// MagangTerbaru adalah baris "pendaftaran terbaru" di dashboard.
type MagangTerbaru struct {
	SiswaNama      string     `json:"siswa_nama"`
	NamaPerusahaan string     `json:"nama_perusahaan"`
	Status         string     `json:"status"`
	TanggalMulai   *time.Time `json:"tanggal_mulai"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DudiTeraktif adalah baris "DUDI aktif" di dashboard, diurutkan dari yang
// paling banyak menampung siswa.
type DudiTeraktif struct {
	NamaPerusahaan string `json:"nama_perusahaan"`
	Alamat         string `json:"alamat"`
	Telepon        string `json:"telepon"`
	SiswaCount     int64  `json:"siswa_count"`
}

// LogbookTerbaru adalah baris "jurnal terbaru" di dashboard admin.
type LogbookTerbaru struct {
	ID               uuid.UUID `json:"id"`
	Tanggal          time.Time `json:"tanggal"`
	Kegiatan         string    `json:"kegiatan"`
	Kendala          *string   `json:"kendala"`
	StatusVerifikasi string    `json:"status_verifikasi"`
	CreatedAt        time.Time `json:"created_at"`
	NamaSiswa        string    `json:"nama_siswa"`
}

// AdminDashboard menggabungkan seluruh isi dashboard admin.
type AdminDashboard struct {
	Stats         AdminStats       `json:"stats"`
	RecentMagang  []MagangTerbaru  `json:"recentMagang"`
	ActiveDudi    []DudiTeraktif   `json:"activeDudi"`
	RecentLogbook []LogbookTerbaru `json:"recentLogbook"`
}

// GuruStats adalah kartu-kartu angka di dashboard guru.
type GuruStats struct {
	TotalSiswaBimbingan int64 `json:"totalSiswaBimbingan"`
	TotalDudiPartner    int64 `json:"totalDudiPartner"`
	SiswaMagang         int64 `json:"siswaMagang"`
	LogbookHariIni      int64 `json:"logbookHariIni"`
}

// GuruDashboard menggabungkan seluruh isi dashboard guru.
type GuruDashboard struct {
	Stats        GuruStats       `json:"stats"`
	RecentMagang []MagangTerbaru `json:"recentMagang"`
	ActiveDudi   []DudiTeraktif  `json:"activeDudi"`
}

// MagangSiswa adalah info magang berjalan milik siswa di dashboard/profil.
type MagangSiswa struct {
	ID             uuid.UUID  `json:"id"`
	Status         string     `json:"status"`
	TanggalMulai   *time.Time `json:"tanggal_mulai"`
	TanggalSelesai *time.Time `json:"tanggal_selesai"`
	NilaiAkhir     *float64   `json:"nilai_akhir"`
	NamaPerusahaan string     `json:"nama_perusahaan"`
	AlamatDudi     string     `json:"alamat_dudi"`
	GuruNama       string     `json:"guru_nama"`
}

// LogbookStats merangkum jumlah jurnal siswa per status verifikasi.
type LogbookStats struct {
	TotalJurnal int64 `json:"total_jurnal"`
	Disetujui   int64 `json:"disetujui"`
	Pending     int64 `json:"pending"`
	Ditolak     int64 `json:"ditolak"`
}

// SiswaDashboard menggabungkan seluruh isi dashboard siswa.
type SiswaDashboard struct {
	Magang *MagangSiswa `json:"magang"`
	Jurnal []Logbook    `json:"jurnal"`
	Stats  LogbookStats `json:"stats"`
}

// SiswaProfil adalah halaman profil siswa: data diri + magang utama +
// sisa kuota pendaftaran.
type SiswaProfil struct {
	SiswaID          uuid.UUID  `json:"siswa_id"`
	Nama             string     `json:"nama"`
	NIS              string     `gorm:"column:nis" json:"nis"`
	Kelas            string     `json:"kelas"`
	Jurusan          string     `json:"jurusan"`
	Alamat           string     `json:"alamat"`
	MagangID         *uuid.UUID `json:"magang_id"`
	TanggalMulai     *time.Time `json:"tanggal_mulai"`
	TanggalSelesai   *time.Time `json:"tanggal_selesai"`
	NilaiAkhir       *float64   `json:"nilai_akhir"`
	MagangStatus     *string    `json:"magang_status"`
	NamaPerusahaan   *string    `json:"nama_perusahaan"`
	AlamatPerusahaan *string    `json:"alamat_perusahaan"`
	Status           string     `gorm:"-" json:"status"`
	TotalPendaftaran int64      `gorm:"-" json:"total_pendaftaran"`
	MaxPendaftaran   int64      `gorm:"-" json:"max_pendaftaran"`
}

// StatusProfilSiswa memetakan status magang mentah ke label profil:
// aktif / selesai / menunggu.
func StatusProfilSiswa(statusMagang *string) string {
	if statusMagang == nil {
		return "menunggu"
	}
	switch *statusMagang {
	case MagangBerlangsung, MagangDiterima:
		return "aktif"
	case MagangSelesai:
		return "selesai"
	default:
		return "menunggu"
	}
}
