package utils

import (
	"testing"

	"github.com/festiloc/festiloc-server/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-phrase")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPasswordHash("s3cret-phrase", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.UserAuth{
		ID:    "11111111-2222-3333-4444-555555555555",
		Email: "admin@festiloc.fr",
		Role:  "admin",
	}

	access, refresh, err := GenerateTokens(user, "test-secret")
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty tokens")
	}

	claims, err := ValidateToken(access, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims["email"] != user.Email {
		t.Errorf("email claim = %v, want %v", claims["email"], user.Email)
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}

	if _, err := ValidateToken(access, "other-secret"); err == nil {
		t.Error("token validated with the wrong secret")
	}
}

func TestSanitizeJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      "{\"a\":1}",
		"```json\n{\"a\":1}\n```":        "{\"a\":1}",
		"```\n[1,2]\n```":                "[1,2]",
		"  \n {\"a\":1} \n ":             "{\"a\":1}",
	}
	for input, want := range cases {
		if got := SanitizeJSON(input); got != want {
			t.Errorf("SanitizeJSON(%q) = %q, want %q", input, got, want)
		}
	}
}
