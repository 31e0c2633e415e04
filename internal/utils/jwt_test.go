package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer  = "identra"
	testSignKey = "secret-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "user-123", time.Hour, testSignKey)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.UserID != "user-123" {
		t.Errorf("expected UserID user-123, got %s", token.UserID)
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != testIssuer {
		t.Errorf("expected issuer %s, got %s", testIssuer, claims.Issuer)
	}
	if claims.Subject != "user-123" {
		t.Errorf("expected subject 'user-123', got %s", claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "u", time.Hour, "key"},
		{"empty user", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "u", 0, "key"},
		{"empty key", "iss", "u", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, "user-7", time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testSignKey, testIssuer)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.UserID != "user-7" {
		t.Errorf("expected UserID user-7, got %s", parsed.UserID)
	}
	if parsed.String() != generated.SignedString {
		t.Error("expected the signed string to be kept")
	}
}

func TestValidateAndParseJWTToken_Rejected(t *testing.T) {
	valid, _ := GenerateJWTToken(testIssuer, "user-7", time.Hour, testSignKey)
	expired, _ := GenerateJWTToken(testIssuer, "user-7", -time.Minute, testSignKey)
	otherIssuer, _ := GenerateJWTToken("someone-else", "user-7", time.Hour, testSignKey)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubjectString, _ := noSubject.SignedString([]byte(testSignKey))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  testIssuer,
		Subject: "user-7",
	})
	noExpiryString, _ := noExpiry.SignedString([]byte(testSignKey))

	tests := []struct {
		name  string
		token string
		key   string
	}{
		{"wrong key", valid.SignedString, "other-key"},
		{"expired", expired.SignedString, testSignKey},
		{"wrong issuer", otherIssuer.SignedString, testSignKey},
		{"no subject", noSubjectString, testSignKey},
		{"no expiry", noExpiryString, testSignKey},
		{"malformed", "not.a.jwt", testSignKey},
		{"alg none", strings.Join([]string{"eyJhbGciOiJub25lIn0", "e30", ""}, "."), testSignKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAndParseJWTToken(tt.token, tt.key, testIssuer); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer  abc ", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"", "", true},
		{"Bearer a b", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state: %v", tt.header, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}

func TestParseUserIDFromJWT(t *testing.T) {
	token, _ := GenerateJWTToken(testIssuer, "user-9", time.Hour, testSignKey)

	got, err := ParseUserIDFromJWT(token.SignedString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "user-9" {
		t.Fatalf("expected user-9, got %s", got)
	}

	if _, err = ParseUserIDFromJWT("garbage"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
