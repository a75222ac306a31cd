package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid", username: "quiet_owl", wantErr: false},
		{name: "trimmed", username: "  owl ", wantErr: false},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: strings.Repeat("a", MaxUsernameLength+1), wantErr: true},
		{name: "bad characters", username: "owl!", wantErr: true},
		{name: "leading underscore", username: "_owl", wantErr: true},
		{name: "reserved any case", username: "Admin", wantErr: true},
		{name: "digit first", username: "7owls", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
			var verr *ValidationError
			if err != nil && (!errors.As(err, &verr) || verr.Field != "username") {
				t.Errorf("error %v is not a username ValidationError", err)
			}
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  Quiet_Owl "); got != "quiet_owl" {
		t.Errorf("NormalizeUsername = %q", got)
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$") {
		t.Errorf("hash = %q", hash)
	}

	ok, err := VerifyPassword("correct horse", hash)
	if err != nil || !ok {
		t.Errorf("VerifyPassword(correct) = %v, %v", ok, err)
	}
	ok, err = VerifyPassword("battery staple", hash)
	if err != nil || ok {
		t.Errorf("VerifyPassword(wrong) = %v, %v", ok, err)
	}

	if _, err := VerifyPassword("x", "plain"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("VerifyPassword(malformed) error = %v", err)
	}
}

func TestVerifyPasswordUsesStoredParams(t *testing.T) {
	light, err := hashWith("correct horse", argonParams{memory: 1024, time: 1, threads: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(light, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("hash = %q", light)
	}
	if ok, err := VerifyPassword("correct horse", light); err != nil || !ok {
		t.Errorf("VerifyPassword(light hash) = %v, %v", ok, err)
	}

	tampered := []string{
		strings.Replace(light, "v=19", "v=16", 1),
		strings.Replace(light, "m=1024,t=1,p=1", "m=x,t=1,p=1", 1),
		strings.Replace(light, "$argon2id$", "$argon2i$", 1),
		light[:strings.LastIndex(light, "$")+1] + "!!!",
	}
	for _, h := range tampered {
		if _, err := VerifyPassword("correct horse", h); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("VerifyPassword(%q) error = %v, want ErrInvalidHash", h, err)
		}
	}
}
