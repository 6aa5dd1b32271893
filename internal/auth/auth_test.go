package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

var testAdmin = &models.AdminUser{
	ID:    7,
	Email: "alice@example.com",
	Name:  "Alice",
}

func TestIssueAndVerifyToken(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	token, err := mgr.IssueToken(testAdmin)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.AdminID != 7 {
		t.Errorf("AdminID = %d, want 7", claims.AdminID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Name != "Alice" {
		t.Errorf("Name = %q", claims.Name)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).IssueToken(testAdmin)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = NewManager("secret-b", time.Hour).VerifyToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	mgr := &Manager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := mgr.IssueToken(testAdmin)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if _, err := mgr.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyToken(expired) = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := mgr.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "hunter2hunter2") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
