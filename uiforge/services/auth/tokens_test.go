package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"uiforge/uiforge/utils/apperr"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestVerifyRejectsBitFlippedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _ := svc.Issue(7)

	dot := strings.LastIndex(token, ".")
	i := dot + 5
	flipped := byte('A')
	if token[i] == 'A' {
		flipped = 'B'
	}
	tampered := token[:i] + string(flipped) + token[i+1:]

	if _, err := svc.Verify(tampered); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _ := svc.Issue(7)
	other, _ := svc.Issue(8)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]
	if _, err := svc.Verify(forged); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _ := svc.Issue(7)

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _ := NewTokenService("one", time.Hour).Issue(1)
	if _, err := NewTokenService("two", time.Hour).Verify(token); err == nil {
		t.Fatal("expected error for foreign secret")
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{"user_id": 1, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenService("secret", time.Hour).Verify(token); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}
