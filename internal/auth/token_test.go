package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, err := mgr.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	mgr := NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.Issue("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := mgr.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestTokenManager_RejectsUnsignedAlg(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	claims := Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_MissingSubject(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, err := mgr.Issue("", "alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
