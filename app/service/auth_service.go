package service

import (
	"errors"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrLoginGagal adalah satu-satunya error yang keluar dari Login: email
// tidak terdaftar dan password salah sengaja tidak dibedakan.
var ErrLoginGagal = errors.New("Email atau password salah")

// Interface AuthService mendefinisikan apa saja yang bisa dilakukan layanan ini.
type AuthService interface {
	Login(email, password string) (*model.User, error)
	Me(id uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService menghubungkan Service dengan Repository
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
	}
}

// Login: memeriksa apakah email dan password cocok.
// Semua password di database tersimpan sebagai hash bcrypt.
func (s *authService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrLoginGagal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrLoginGagal
	}

	// Jika sukses, kembalikan data user (handler yang membuat token JWT).
	return user, nil
}

// Me mengambil data user segar dari database. Dipakai endpoint /me supaya
// perubahan nama/role terlihat tanpa menunggu token baru.
func (s *authService) Me(id uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(id)
}
