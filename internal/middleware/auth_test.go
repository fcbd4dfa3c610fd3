package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, scopes []string, expired bool) string {
	t.Helper()

	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Scopes: scopes,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func protectedHandler() http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	return Auth(testSecret)(RequireScope(ScopeAdmin)(http.HandlerFunc(fn)))
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signTokenWith(t, "other-secret", []string{ScopeAdmin}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signExpired(t),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token without admin scope",
			authHeader: "Bearer " + signTokenWith(t, testSecret, []string{"read"}),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "valid admin token",
			authHeader: "Bearer " + signTokenWith(t, testSecret, []string{ScopeAdmin}),
			wantStatus: http.StatusOK,
		},
	}

	handler := protectedHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func signTokenWith(t *testing.T, secret string, scopes []string) string {
	return signToken(t, secret, scopes, false)
}

func signExpired(t *testing.T) string {
	return signToken(t, testSecret, []string{ScopeAdmin}, true)
}

func TestHasScope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := req.Context()

	if HasScope(ctx, ScopeAdmin) {
		t.Error("empty context should not carry scopes")
	}
}
