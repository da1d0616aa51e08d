package model

import (
	"errors"
	"fmt"
)

// Role pengguna (kolom users.role).
const (
	RoleAdmin = "admin"
	RoleSiswa = "siswa"
	RoleGuru  = "guru"
	RoleDudi  = "dudi"
)

// Status DUDI.
const (
	DudiAktif    = "aktif"
	DudiNonaktif = "nonaktif"
	DudiPending  = "pending"
)

// Status magang.
const (
	MagangPending     = "pending"
	MagangDiterima    = "diterima"
	MagangDitolak     = "ditolak"
	MagangBerlangsung = "berlangsung"
	MagangSelesai     = "selesai"
	MagangDibatalkan  = "dibatalkan"
)

// Status verifikasi logbook.
const (
	VerifikasiPending   = "pending"
	VerifikasiDisetujui = "disetujui"
	VerifikasiDitolak   = "ditolak"
)

// BatasPendaftaranMagang: 1 siswa maksimal mendaftar di 3 DUDI.
const BatasPendaftaranMagang = 3

// Error aturan bisnis. Pesan dalam Bahasa Indonesia karena langsung
// ditampilkan ke pengguna lewat response envelope (HTTP 400).
var (
	ErrBatasPendaftaran = fmt.Errorf("Anda sudah mencapai batas maksimal %d pendaftaran magang", BatasPendaftaranMagang)
	ErrSudahTerdaftar   = errors.New("Anda sudah mendaftar di DUDI ini")
	ErrDudiTidakAktif   = errors.New("DUDI tidak ditemukan atau tidak aktif")
	ErrGuruBelumAda     = errors.New("Guru pembimbing belum tersedia")

	ErrDudiMasihAktif   = errors.New("Tidak dapat menghapus DUDI yang masih memiliki siswa magang aktif")
	ErrNamaPerusahaan   = errors.New("Nama perusahaan sudah terdaftar")
	ErrMagangAdaLogbook = errors.New("Tidak dapat menghapus data magang yang sudah memiliki logbook")
	ErrSiswaMagangAktif = errors.New("Siswa sudah terdaftar dalam program magang yang aktif")

	ErrLogbookDisetujui = errors.New("Jurnal sudah disetujui, tidak bisa diubah")
	ErrTanpaMagangAktif = errors.New("Tidak ada magang aktif")

	ErrEmailTerdaftar = errors.New("Email sudah terdaftar")
	ErrNISTerdaftar   = errors.New("NIS sudah terdaftar")
	ErrNIPTerdaftar   = errors.New("NIP sudah terdaftar")
	ErrProfilKurang   = errors.New("Data profil untuk role tersebut wajib diisi")
)

// StatusMagangAktif adalah himpunan status yang dihitung sebagai "sedang
// magang": menghalangi penghapusan DUDI dan menjadi syarat pengisian logbook.
func StatusMagangAktif() []string {
	return []string{MagangBerlangsung, MagangDiterima}
}

// MagangAktif melaporkan apakah sebuah status magang termasuk aktif.
func MagangAktif(status string) bool {
	return status == MagangBerlangsung || status == MagangDiterima
}

// MagangFinal melaporkan apakah sebuah magang sudah berakhir
// (tidak lagi menghalangi penempatan baru oleh guru).
func MagangFinal(status string) bool {
	return status == MagangSelesai || status == MagangDibatalkan
}

// CekPendaftaranMagang memvalidasi pendaftaran mandiri siswa ke sebuah DUDI.
// Urutan pengecekan mengikuti alur pendaftaran:
//  1. kuota total maksimal 3 pendaftaran
//  2. belum pernah mendaftar di DUDI yang sama (status apa pun)
//  3. DUDI ada dan berstatus aktif
func CekPendaftaranMagang(totalPendaftaran int64, sudahTerdaftar bool, dudi *Dudi) error {
	if totalPendaftaran >= BatasPendaftaranMagang {
		return ErrBatasPendaftaran
	}
	if sudahTerdaftar {
		return ErrSudahTerdaftar
	}
	if dudi == nil || dudi.Status != DudiAktif {
		return ErrDudiTidakAktif
	}
	return nil
}

// BolehHapusDudi: DUDI tidak boleh dihapus selama masih ada magang aktif.
func BolehHapusDudi(jumlahMagangAktif int64) error {
	if jumlahMagangAktif > 0 {
		return ErrDudiMasihAktif
	}
	return nil
}

// BolehHapusMagang: magang tidak boleh dihapus jika sudah punya logbook.
// Jumlah yang dihitung termasuk entri yang sudah di-soft-delete.
func BolehHapusMagang(jumlahLogbook int64) error {
	if jumlahLogbook > 0 {
		return ErrMagangAdaLogbook
	}
	return nil
}

// BolehUbahLogbook: siswa tidak boleh mengubah/menghapus jurnal yang sudah
// disetujui guru. Guru tetap boleh memverifikasi ulang kapan saja.
func BolehUbahLogbook(statusVerifikasi string) error {
	if statusVerifikasi == VerifikasiDisetujui {
		return ErrLogbookDisetujui
	}
	return nil
}

// StatusSetelahUbah: setiap editan siswa mengembalikan jurnal ke antrian
// verifikasi, meskipun siswa tidak meminta perubahan status.
func StatusSetelahUbah() string { return VerifikasiPending }

// NormalisasiNilaiAkhir menerapkan aturan nilai: nilai akhir hanya disimpan
// saat status=selesai; status lain memaksa nilai menjadi NULL apa pun isi
// request-nya.
func NormalisasiNilaiAkhir(status string, nilai *float64) *float64 {
	if status != MagangSelesai {
		return nil
	}
	return nilai
}

// ProfilInput adalah muatan profil role-spesifik pada create/update user.
// Hanya satu yang boleh terisi, sesuai role tujuan.
type ProfilInput struct {
	Siswa *Siswa
	Guru  *Guru
	Dudi  *Dudi
}

// CekProfilUntukRole memastikan payload membawa sub-objek profil yang sesuai
// dengan role tujuan (total function: role lama + role baru -> profil baru
// wajib ada). Admin tidak punya tabel profil.
func CekProfilUntukRole(role string, profil ProfilInput) error {
	switch role {
	case RoleSiswa:
		if profil.Siswa == nil {
			return ErrProfilKurang
		}
	case RoleGuru:
		if profil.Guru == nil {
			return ErrProfilKurang
		}
	case RoleDudi:
		if profil.Dudi == nil {
			return ErrProfilKurang
		}
	case RoleAdmin:
		// tanpa profil
	default:
		return fmt.Errorf("role tidak dikenal: %s", role)
	}
	return nil
}

// ProfilUsang mengembalikan role profil yang harus dihapus setelah
// perpindahan role. Kosong jika role tidak berubah atau role lama admin.
func ProfilUsang(roleLama, roleBaru string) string {
	if roleLama == roleBaru {
		return ""
	}
	switch roleLama {
	case RoleSiswa, RoleGuru, RoleDudi:
		return roleLama
	}
	return ""
}
