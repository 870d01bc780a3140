package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/identkit/identkit"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestIdentityDecodesProfile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathMe {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    int64(42),
			"email": "alice@example.com",
			"role":  "editor",
		})
	}))

	id, err := client.Identity(context.Background())
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	if id.ID != 42 || id.Email != "alice@example.com" || id.Role != identkit.RoleEditor {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestIdentityMapsNon200ToRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	_, err := client.Identity(context.Background())
	if !errors.Is(err, identkit.ErrIdentityRejected) {
		t.Fatalf("expected ErrIdentityRejected, got %v", err)
	}
}

func TestLoginStoresSessionCookie(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	var tokenValue string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case pathLogin:
			var body credentialsBody
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode login body: %v", err)
			}
			if body.Email != "alice@example.com" {
				t.Fatalf("unexpected login payload %+v", body)
			}
			http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: tokenValue, Path: "/"})
		case pathMe:
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value != tokenValue {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"id": int64(1), "email": "alice@example.com", "role": "user"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	tokenValue = signedTestToken(t, exp)

	if err := client.Login(context.Background(), "alice@example.com", "Abc123!"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// The cookie jar now authenticates the me call.
	if _, err := client.Identity(context.Background()); err != nil {
		t.Fatalf("identity after login: %v", err)
	}

	got, ok := client.TokenExpiry()
	if !ok {
		t.Fatalf("expected token expiry from the session cookie")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry mismatch: got %v want %v", got, exp)
	}
}

func TestTokenExpiryWithoutSession(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())
	if _, ok := client.TokenExpiry(); ok {
		t.Fatalf("no cookie means no expiry")
	}
}

func TestVerifyEmailSendsTokenQuery(t *testing.T) {
	var gotToken string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathVerify {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotToken = r.URL.Query().Get("token")
	}))

	if err := client.VerifyEmail(context.Background(), "tok-123"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if gotToken != "tok-123" {
		t.Fatalf("token not forwarded, got %q", gotToken)
	}
}

func TestVerifyEmailMapsRejection(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	err := client.VerifyEmail(context.Background(), "tok-123")
	if !errors.Is(err, identkit.ErrVerificationRejected) {
		t.Fatalf("expected ErrVerificationRejected, got %v", err)
	}
}

func TestLogoutTreatsAnyResponseAsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout must swallow status codes, got %v", err)
	}
}

func TestRegisterReportsFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "This email address is already in use", http.StatusBadRequest)
	}))

	if err := client.Register(context.Background(), "alice@example.com", "Abc123!"); err == nil {
		t.Fatalf("register must surface a 400")
	}
}

func TestConfigValidation(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "", Timeout: time.Second}); err == nil {
		t.Fatalf("empty base URL must be rejected")
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost", Timeout: 0}); err == nil {
		t.Fatalf("zero timeout must be rejected")
	}
}
