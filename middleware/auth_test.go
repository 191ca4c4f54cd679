package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resto-backend/utils"
)

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAdmin(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": AdminName(c)})
	})
	return r
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	r := authTestRouter("secret")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdminRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 1, "Siti", 10)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	r := authTestRouter("secret")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdminAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 7, "Siti", 10)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	r := authTestRouter("secret")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, `"actor":"Siti"`) {
		t.Fatalf("expected actor name in response, got %s", body)
	}
}
