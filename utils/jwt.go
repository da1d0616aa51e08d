package utils

import (
	"errors"
	"os"
	"time"

	"magang-portal-backend/app/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime: token kedaluwarsa 24 jam, tanpa mekanisme refresh.
// Setelah lewat, pengguna harus login ulang.
const TokenLifetime = 24 * time.Hour

/*
 JWTCustomClaims

 Token menyimpan identitas minimum yang dibutuhkan route handler:
 - UserID (uuid)  : identitas user (tabel users)
 - Name   (string): nama lengkap, dipakai frontend tanpa fetch ulang
 - Email  (string)
 - Role   (string): admin / siswa / guru / dudi
*/
type JWTCustomClaims struct {
	UserID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// getJWTSecret membaca JWT_SECRET dari environment setiap kali dipanggil.
// Ini menghindari masalah ketika .env baru di-load setelah package di-import.
func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return []byte(secret), nil
}

// GenerateToken membuat JWT access token untuk user yang berhasil login.
func GenerateToken(user *model.User) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := JWTCustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken mem-validasi JWT dan mengembalikan *JWTCustomClaims jika valid.
// Gagal tertutup: signature salah, expired, atau claim rusak semuanya
// mengembalikan error.
func ValidateToken(tokenString string) (*JWTCustomClaims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTCustomClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
