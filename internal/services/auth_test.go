package services

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Senha123", false},
		{"too short", "Ab1", true},
		{"no digit", "SenhaForte", true},
		{"exactly eight with digit", "abcdefg1", false},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for %q", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %v", tc.password, err)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	token, err := generateToken(32)
	if err != nil {
		t.Fatalf("generateToken failed: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64 hex chars for 32 bytes, got %d", len(token))
	}

	second, _ := generateToken(32)
	if token == second {
		t.Errorf("two tokens must not collide")
	}
}

func TestEmailRegex(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	invalid := []string{"", "plain", "user@", "@example.com", "user@domain"}

	for _, email := range valid {
		if !emailRegex.MatchString(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if emailRegex.MatchString(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestVerificationEmailKeysAreNamespaced(t *testing.T) {
	// The Redis keys for the auth flows must not collide with the
	// transient study state.
	if strings.HasPrefix(EmailQueueKey, "simulado:") || strings.HasPrefix(EmailQueueKey, "practice:") {
		t.Fatalf("queue key collides with transient state namespaces: %s", EmailQueueKey)
	}
}
