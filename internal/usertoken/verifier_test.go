package usertoken

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer, err := NewIssuer(Config{Secret: testSecret}, 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if issuer.TTL() != time.Hour {
		t.Fatalf("default ttl = %s, want 1h", issuer.TTL())
	}
	token, err := issuer.Issue("user-1", "a@example.com", RoleEmployer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier, err := NewHMACVerifier(Config{Secret: testSecret, Algorithm: "hs256"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID() != "user-1" || claims.Email != "a@example.com" || claims.Role != RoleEmployer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewIssuer(Config{Secret: "other-secret"}, time.Minute)
	token, err := issuer.Issue("user-1", "", RoleCandidate)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	verifier, _ := NewHMACVerifier(Config{Secret: testSecret})
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer, _ := NewIssuer(Config{Secret: testSecret}, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue("user-1", "", RoleCandidate)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	verifier, _ := NewHMACVerifier(Config{Secret: testSecret})
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	verifier, _ := NewHMACVerifier(Config{Secret: testSecret, Algorithm: "HS256"})

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := hs512.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	if _, err := verifier.Verify(signed); err == nil {
		t.Fatalf("expected HS512 token to be rejected by HS256 verifier")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := verifier.Verify(unsigned); err == nil {
		t.Fatalf("expected alg=none token to be rejected")
	}
}

func TestVerifyRequiresSubjectAndExpiry(t *testing.T) {
	verifier, _ := NewHMACVerifier(Config{Secret: testSecret})

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	})
	signed, _ := noSubject.SignedString([]byte(testSecret))
	if _, err := verifier.Verify(signed); err == nil {
		t.Fatalf("expected token without subject to fail")
	}

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	signed, _ = noExpiry.SignedString([]byte(testSecret))
	if _, err := verifier.Verify(signed); err == nil {
		t.Fatalf("expected token without exp to fail")
	}

	if _, err := verifier.Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected garbage token to fail")
	}
}

func TestConfigValidation(t *testing.T) {
	if _, err := NewHMACVerifier(Config{}); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
	if _, err := NewHMACVerifier(Config{Secret: testSecret, Algorithm: "RS256"}); err == nil {
		t.Fatalf("expected non-HMAC algorithm to fail")
	}
	if _, err := NewIssuer(Config{Secret: testSecret, Algorithm: "HS384"}, time.Minute); err != nil {
		t.Fatalf("HS384 should be accepted: %v", err)
	}
}
