package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// File upload (logo sekolah, lampiran logbook) disimpan di direktori statis
// public/uploads dan direferensikan lewat path relatif root (/uploads/...).
// Penulisan file tidak transaksional dengan update baris database.

// PublicDir adalah root direktori statis yang dilayani di /uploads.
const PublicDir = "public"

var nonWordChars = regexp.MustCompile(`[^\w.\-]`)

// SanitizeFileName membersihkan nama file upload: spasi menjadi underscore,
// karakter non-word dibuang.
func SanitizeFileName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	return nonWordChars.ReplaceAllString(name, "")
}

// SimpanUpload menyimpan file multipart ke public/uploads/<subdir> dengan
// prefix timestamp dan mengembalikan path publiknya (/uploads/<subdir>/...).
func SimpanUpload(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(PublicDir, "uploads", subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), SanitizeFileName(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, fileName)); err != nil {
		return "", err
	}

	return "/uploads/" + subdir + "/" + fileName, nil
}

// HapusUpload menghapus file berdasarkan path publiknya. Best effort:
// kegagalan diabaikan, baris database tetap diperbarui.
func HapusUpload(publicPath string) {
	if publicPath == "" || !strings.HasPrefix(publicPath, "/uploads/") {
		return
	}
	_ = os.Remove(filepath.Join(PublicDir, filepath.FromSlash(strings.TrimPrefix(publicPath, "/"))))
}
