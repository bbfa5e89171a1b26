package security_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"document-versioning-server/config"
	"document-versioning-server/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService() *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{SecretKey: "test-secret", Issuer: "tests"})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newJWTService()

	token, err := svc.GenerateAccessToken("user-1", "Анна", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserUUID)
	assert.Equal(t, "Анна", claims.Uploader().Name)
}

func TestJWT_Rejects(t *testing.T) {
	svc := newJWTService()

	expired, err := svc.GenerateAccessToken("user-1", "", -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(expired)
	assert.Error(t, err)

	other, err := security.NewJWTService(&config.JWTConfig{SecretKey: "other"}).GenerateAccessToken("user-1", "", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(other)
	assert.Error(t, err)

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_uuid": "user-1"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateJWT(hs256)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	svc := newJWTService()
	var seen string
	handler := security.JWTMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := security.GetClaimsFromContext(r.Context())
		require.NoError(t, err)
		seen = claims.UserUUID
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := svc.GenerateAccessToken("user-7", "", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-7", seen)
}

func TestRateLimiter(t *testing.T) {
	limiter := security.NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/public/share/x", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/public/share/x", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
