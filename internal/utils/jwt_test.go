package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(testSecret, "user-1", "Admin User", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected UserID user-1, got %s", claims.UserID)
	}
	if claims.Name != "Admin User" {
		t.Fatalf("expected Name Admin User, got %s", claims.Name)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected Role admin, got %s", claims.Role)
	}
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(testSecret, "user-1", "Admin User", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	_, err = ValidateJWT(testSecret, token)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(testSecret, "user-1", "Admin User", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	_, err = ValidateJWT([]byte("other-secret"), token)
	if err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatal("wrong-secret error must not look like expiry")
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	if _, err := ValidateJWT(testSecret, "not.a.token"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !CheckPasswordHash("admin123", hash) {
		t.Fatal("CheckPasswordHash rejected the correct password")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("CheckPasswordHash accepted a wrong password")
	}
}
