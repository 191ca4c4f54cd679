package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAdmin validates the Bearer token on back-office routes and puts the
// acting admin's id and display name into the request context, so handlers
// stamp confirmed_by/rejected_by from explicit request-scoped credentials
// rather than shared state.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.unauthorized", "message": "missing bearer token"},
			})
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.unauthorized", "message": "invalid token"},
			})
			return
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.unauthorized", "message": "invalid claims"},
			})
			return
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set("admin_id", uint(sub))
		}
		if name, ok := claims["name"].(string); ok {
			c.Set("admin_name", name)
		}
		c.Next()
	}
}

// AdminName returns the display name of the authenticated admin, falling
// back to "admin" for tokens minted before the name claim existed.
func AdminName(c *gin.Context) string {
	if v, ok := c.Get("admin_name"); ok {
		if s, ok2 := v.(string); ok2 && s != "" {
			return s
		}
	}
	return "admin"
}
