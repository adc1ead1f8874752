package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uploadhub/uploadhub/config"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newGinContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestExtractTokenPrefersCookieOverHeader(t *testing.T) {
	c := newGinContext()
	c.Request.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	c.Request.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "cookie-token", ExtractToken(c))
}

func TestExtractTokenFallsBackToBearerHeader(t *testing.T) {
	c := newGinContext()
	c.Request.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "header-token", ExtractToken(c))
}

func TestExtractTokenEmptyWithoutCredentials(t *testing.T) {
	c := newGinContext()
	assert.Empty(t, ExtractToken(c))

	c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, ExtractToken(c))
}

func TestSubjectFromTokenRoundTrip(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "test-secret"

	token := signToken(t, "test-secret", "lshaw")
	assert.Equal(t, "lshaw", SubjectFromToken(token, cfg))
}

func TestSubjectFromTokenRejectsBadSignature(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "test-secret"

	token := signToken(t, "other-secret", "lshaw")
	assert.Empty(t, SubjectFromToken(token, cfg))
}

func TestSubjectFromTokenEmptyWithoutSecret(t *testing.T) {
	cfg := &config.EnvConfig{}

	token := signToken(t, "anything", "lshaw")
	assert.Empty(t, SubjectFromToken(token, cfg))
}
