package middleware

import (
	"net/http"
	"strings"

	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
)

// Nama cookie yang di-set saat login; token bisa dikirim lewat header
// Authorization (Bearer) atau cookie ini.
const AuthCookieName = "auth-token"

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// atau cookie auth-token, lalu menyimpan informasi user (userID, name,
// email, role) ke dalam context. Token hilang/rusak dijawab 403 tanpa
// detail, sama seperti role yang tidak cocok.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusForbidden, utils.BuildResponseFailed(""))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusForbidden, utils.BuildResponseFailed(""))
			c.Abort()
			return
		}

		// Inject nilai-nilai penting ke context untuk dipakai di service
		c.Set("userID", claims.UserID)
		c.Set("name", claims.Name)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// tokenFromRequest mengambil token dari header Authorization dulu,
// lalu fallback ke cookie auth-token.
func tokenFromRequest(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}

	cookie, err := c.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie
}
