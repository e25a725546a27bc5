package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key"

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			handler := AuthRequired(testSecret)
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で401が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createTokenWithSecret("wrong-secret", 1, false, time.Hour)},
		{"expired token", createTokenWithSecret(testSecret, 1, false, -time.Hour)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+tt.token)

			handler := AuthRequired(testSecret)
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、コンテキストにアイデンティティが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	tests := []struct {
		name    string
		userID  uint
		isAdmin bool
	}{
		{"regular user", 1, false},
		{"admin user", 42, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			token := createTokenWithSecret(testSecret, tt.userID, tt.isAdmin, time.Hour)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+token)

			handler := AuthRequired(testSecret)
			handler(c)

			if c.IsAborted() {
				t.Errorf("expected request not to be aborted, response: %s", w.Body.String())
				return
			}

			userID, exists := c.Get(ContextUserID)
			if !exists {
				t.Error("expected userID to be set in context")
				return
			}
			if userID.(uint) != tt.userID {
				t.Errorf("expected userID %d, got %d", tt.userID, userID)
			}

			email, exists := c.Get(ContextEmail)
			if !exists || email.(string) != "test@example.com" {
				t.Errorf("expected email to be set in context, got %v", email)
			}

			isAdmin, exists := c.Get(ContextIsAdmin)
			if !exists || isAdmin.(bool) != tt.isAdmin {
				t.Errorf("expected isAdmin %v, got %v", tt.isAdmin, isAdmin)
			}
		})
	}
}

// TestAuthRequired_InvalidSigningMethod はnoneアルゴリズム（未署名）のトークンが拒否されることを検証します。
func TestAuthRequired_InvalidSigningMethod(t *testing.T) {
	// Create token with "none" algorithm (unsigned)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	tokenStr, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+tokenStr)

	handler := AuthRequired(testSecret)
	handler(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAdminRequired は管理者フラグの有無で通過・403拒否が切り替わることを検証します。
func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name         string
		setIsAdmin   bool
		isAdmin      bool
		expectedCode int
		expectAbort  bool
	}{
		{"admin passes", true, true, http.StatusOK, false},
		{"non-admin forbidden", true, false, http.StatusForbidden, true},
		{"no identity forbidden", false, false, http.StatusForbidden, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.setIsAdmin {
				c.Set(ContextIsAdmin, tt.isAdmin)
			}

			handler := AdminRequired()
			handler(c)

			if c.IsAborted() != tt.expectAbort {
				t.Errorf("expected aborted=%v, got %v", tt.expectAbort, c.IsAborted())
			}
			if tt.expectAbort && w.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}

// TestIdentityRequired はコンテキストにアイデンティティが無い場合に401が返されることを検証します。
func TestIdentityRequired(t *testing.T) {
	t.Run("identity present", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(ContextUserID, uint(7))

		handler := IdentityRequired()
		handler(c)

		if c.IsAborted() {
			t.Error("expected request not to be aborted")
		}
	})

	t.Run("identity missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		handler := IdentityRequired()
		handler(c)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}

// TestUserIDFromContext はコンテキストからの認証済みユーザーID取り出しを検証します。
func TestUserIDFromContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := UserIDFromContext(c); ok {
		t.Error("expected no userID in empty context")
	}

	c.Set(ContextUserID, uint(12))
	id, ok := UserIDFromContext(c)
	if !ok || id != 12 {
		t.Errorf("expected userID 12, got %d (ok=%v)", id, ok)
	}
}

// createTokenWithSecret はテスト用に指定されたシークレットとクレームで署名済みJWTトークンを生成します。
func createTokenWithSecret(secret string, userID uint, isAdmin bool, expiration time.Duration) string {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"exp":   time.Now().Add(expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": "test@example.com",
		"admin": isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}
