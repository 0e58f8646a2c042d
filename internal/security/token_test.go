package security

import (
	"testing"
)

const testSecret = "this_is_a_test_secret_key_with_32_chars_minimum"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(42, "nikita", testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateJWT() returned empty token")
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "nikita" {
		t.Errorf("claims.Username = %q, want %q", claims.Username, "nikita")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "nikita", testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ValidateJWT(token, "another_secret_that_is_also_32_chars_long!!"); err == nil {
		t.Error("ValidateJWT() accepted a token signed with a different secret")
	}
}

func TestValidateJWT_Garbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token", testSecret); err == nil {
		t.Error("ValidateJWT() accepted garbage input")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	token1, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}
	token2, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("GenerateRandomToken() error = %v", err)
	}

	if token1 == token2 {
		t.Error("GenerateRandomToken() produced identical tokens")
	}
}
