package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "my_test_jwt_secret"

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	tokenString, err := GenerateToken(testSecret, userID, TokenTTL)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if tokenString == "" {
		t.Fatalf("empty token string")
	}

	claims, err := ParseToken(testSecret, tokenString)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	subject, err := claims.SubjectID()
	if err != nil {
		t.Fatalf("failed to decode subject: %v", err)
	}
	if subject != userID {
		t.Errorf("expected subject %v, got %v", userID, subject)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		t.Errorf("token should not be expired, got expiresAt=%v", claims.ExpiresAt)
	}
	if claims.IssuedAt == nil {
		t.Errorf("token should carry an issued-at claim")
	}
}

func TestParseToken_Missing(t *testing.T) {
	_, err := ParseToken(testSecret, "")
	if !errors.Is(err, ErrTokenMissing) {
		t.Errorf("expected ErrTokenMissing, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	_, err = ParseToken(testSecret, tokenString)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_TamperedSignature(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, uuid.New(), TokenTTL)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	// Flip a byte in the signature segment.
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ParseToken(testSecret, tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken(testSecret, "this.is.not.a.valid.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(testSecret, uuid.New(), TokenTTL)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	_, err = ParseToken("totally_wrong_secret", tokenString)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}
