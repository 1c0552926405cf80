package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueParseRoundTrip(t *testing.T) {
	svc := NewService("secret")
	tok, err := svc.Issue("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@b.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	exp := claims.ExpiresAt.Time
	if d := time.Until(exp); d < 23*time.Hour || d > 25*time.Hour {
		t.Fatalf("token lifetime off: expires in %s", d)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewService("secret-a").Issue("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewService("secret-b").Parse(tok); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewService("secret")
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Parse(tok); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestMiddleware(t *testing.T) {
	svc := NewService("secret")
	var gotSub string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
	})
	handler := Middleware(svc)(next)

	// no header
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: want 401, got %d", rec.Code)
	}

	// garbage token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad token: want 400, got %d", rec.Code)
	}

	// valid token
	tok, err := svc.Issue("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: want 200, got %d", rec.Code)
	}
	if gotSub != "user-1" {
		t.Fatalf("subject not propagated, got %q", gotSub)
	}
}
