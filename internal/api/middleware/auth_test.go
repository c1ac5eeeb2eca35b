package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/auditgrid/auditgrid/config"
	"github.com/auditgrid/auditgrid/internal/core/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func newTestMiddleware() *AuthMiddleware {
	svc := auth.NewService(nil, &config.JWTConfig{Secret: testSecret, ExpirationHours: 1})
	return NewAuthMiddleware(svc)
}

// Helper to create test context
func createTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func signToken(t *testing.T, secret string, userID uuid.UUID, email string) string {
	t.Helper()
	claims := auth.JWTClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	c, w := createTestContext()

	newTestMiddleware().Authenticate()(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without Authorization header, got %d", w.Code)
	}
	if !c.IsAborted() {
		t.Error("request should be aborted")
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	c, w := createTestContext()
	c.Request.Header.Set("Authorization", "Basic abc123")

	newTestMiddleware().Authenticate()(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-bearer header, got %d", w.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	c, w := createTestContext()
	c.Request.Header.Set("Authorization", "Bearer not-a-token")

	newTestMiddleware().Authenticate()(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	c, w := createTestContext()
	token := signToken(t, "other-secret", uuid.New(), "user@example.com")
	c.Request.Header.Set("Authorization", "Bearer "+token)

	newTestMiddleware().Authenticate()(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for token signed with wrong secret, got %d", w.Code)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	c, w := createTestContext()
	userID := uuid.New()
	token := signToken(t, testSecret, userID, "user@example.com")
	c.Request.Header.Set("Authorization", "Bearer "+token)

	newTestMiddleware().Authenticate()(c)

	if c.IsAborted() {
		t.Fatalf("valid token should not abort, status %d: %s", w.Code, w.Body.String())
	}

	gotID, ok := GetUserID(c)
	if !ok {
		t.Fatal("user id should be set in context")
	}
	if gotID != userID {
		t.Errorf("context user id = %v, expected %v", gotID, userID)
	}
	if email := GetUserEmail(c); email != "user@example.com" {
		t.Errorf("context email = %q, expected user@example.com", email)
	}
}

func TestAuthenticate_CaseInsensitiveScheme(t *testing.T) {
	c, _ := createTestContext()
	token := signToken(t, testSecret, uuid.New(), "user@example.com")
	c.Request.Header.Set("Authorization", "bearer "+token)

	newTestMiddleware().Authenticate()(c)

	if c.IsAborted() {
		t.Error("lowercase bearer scheme should be accepted")
	}
}

// Test GetUserID helper function
func TestGetUserID_Valid(t *testing.T) {
	c, _ := createTestContext()
	expectedID := uuid.New()
	c.Set(ContextUserID, expectedID)

	id, ok := GetUserID(c)
	if !ok {
		t.Error("GetUserID should return true when user_id is set")
	}
	if id != expectedID {
		t.Errorf("GetUserID returned %v, expected %v", id, expectedID)
	}
}

func TestGetUserID_NotSet(t *testing.T) {
	c, _ := createTestContext()

	_, ok := GetUserID(c)
	if ok {
		t.Error("GetUserID should return false when user_id is not set")
	}
}

func TestGetUserID_InvalidType(t *testing.T) {
	c, _ := createTestContext()
	c.Set(ContextUserID, "not-a-uuid")

	_, ok := GetUserID(c)
	if ok {
		t.Error("GetUserID should return false when user_id has invalid type")
	}
}

func TestGetUserEmail_NotSet(t *testing.T) {
	c, _ := createTestContext()

	if email := GetUserEmail(c); email != "" {
		t.Errorf("GetUserEmail should return empty string when not set, got %q", email)
	}
}
