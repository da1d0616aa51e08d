package utils

// APIResponse adalah envelope JSON standar yang diterima frontend.
// Contoh sukses : { "success": true,  "message": "DUDI berhasil ditambahkan", "data": { ... } }
// Contoh gagal  : { "success": false, "message": "Nama perusahaan sudah terdaftar" }
// Stats dan Total hanya muncul di endpoint listing/dashboard tertentu.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Stats   interface{} `json:"stats,omitempty"`
	Total   *int64      `json:"total,omitempty"`
}

// BuildResponseSuccess digunakan saat request berhasil (HTTP 200/201).
func BuildResponseSuccess(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// BuildResponseFailed digunakan saat terjadi error (HTTP 400, 401, 404, 500).
// Untuk kegagalan otentikasi/otorisasi, kirim message kosong agar tidak
// membocorkan detail.
func BuildResponseFailed(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

// BuildResponseList digunakan untuk listing yang membawa blok stats dan/atau
// total untuk pagination.
func BuildResponseList(data interface{}, stats interface{}, total *int64) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
		Stats:   stats,
		Total:   total,
	}
}
