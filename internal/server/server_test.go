package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snhrk2951/illumi-contest-services/api/internal/config"
	commonhttp "github.com/snhrk2951/illumi-contest-services/api/internal/interfaces/http/common"
)

func newAuthTestServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		logger: log.New(io.Discard, "", 0),
		jwtConfigs: []config.JWTConfig{
			{Issuer: "illumi-contest-auth", Secret: []byte("test-secret")},
		},
		jwtAudience: "illumi-contest-api",
	}
}

func signToken(t *testing.T, secret, issuer, subject, role string, audience []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": subject,
		"aud": audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	srv := newAuthTestServer(t)

	var captured commonhttp.AuthenticatedUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = commonhttp.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token := signToken(t, "test-secret", "illumi-contest-auth", "user-1", "", []string{"illumi-contest-api"})
	req := httptest.NewRequest(http.MethodGet, "/entries/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	srv.authMiddleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", captured.ID)
	assert.False(t, captured.IsAdmin())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	srv := newAuthTestServer(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + signTokenWithSecret(t, "other-secret")},
		{"wrong issuer", "Bearer " + signToken(t, "test-secret", "someone-else", "user-1", "", []string{"illumi-contest-api"})},
		{"wrong audience", "Bearer " + signToken(t, "test-secret", "illumi-contest-auth", "user-1", "", []string{"other-api"})},
		{"empty subject", "Bearer " + signToken(t, "test-secret", "illumi-contest-auth", "", "", []string{"illumi-contest-api"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/entries/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			srv.authMiddleware(next).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func signTokenWithSecret(t *testing.T, secret string) string {
	t.Helper()
	return signToken(t, secret, "illumi-contest-auth", "user-1", "", []string{"illumi-contest-api"})
}

func TestRequireAdmin(t *testing.T) {
	srv := newAuthTestServer(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	adminToken := signToken(t, "test-secret", "illumi-contest-auth", "admin-1", "admin", []string{"illumi-contest-api"})
	req := httptest.NewRequest(http.MethodGet, "/admin/entries", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	srv.authMiddleware(srv.requireAdmin(next)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	userToken := signToken(t, "test-secret", "illumi-contest-auth", "user-1", "", []string{"illumi-contest-api"})
	req = httptest.NewRequest(http.MethodGet, "/admin/entries", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	srv.authMiddleware(srv.requireAdmin(next)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWithCORS(t *testing.T) {
	mw := withCORS([]string{"https://illumi.example.com"})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set("Origin", "https://illumi.example.com")
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	assert.Equal(t, "https://illumi.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
