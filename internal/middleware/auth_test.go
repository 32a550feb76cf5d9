package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/pkg/logger"
)

const testSecret = "test-secret"

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func TestIssueAndParseAdminToken(t *testing.T) {
	token, err := IssueAdminToken(domain.UserID(42), testSecret, time.Hour)
	require.NoError(t, err)

	id, err := ParseAdminToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(42), id)
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueAdminToken(domain.UserID(42), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	token, err := IssueAdminToken(domain.UserID(42), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAdminToken(token, testSecret)
	assert.Error(t, err)
}

func TestAdminAuthPutsIDInContext(t *testing.T) {
	token, err := IssueAdminToken(domain.UserID(7), testSecret, time.Hour)
	require.NoError(t, err)

	var gotID domain.UserID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = AdminIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := AdminAuth(testSecret, testLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, domain.UserID(7), gotID)
}

func TestAdminAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	handler := AdminAuth(testSecret, testLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		}))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/teams", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
