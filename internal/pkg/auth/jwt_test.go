package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "bucodel.test",
	})
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := newTestService(time.Hour)

	p := &Principal{ID: 42, Email: "admin@bucodel.edu", Kind: PrincipalAdmin, Role: "admin"}
	token, err := svc.IssueToken(p)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	got, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got.ID != p.ID || got.Email != p.Email || got.Kind != p.Kind || got.Role != p.Role {
		t.Errorf("principal round-trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.IssueToken(&Principal{ID: 1, Email: "s@bucodel.edu", Kind: PrincipalStudent})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("VerifyToken error = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := newTestService(time.Hour).IssueToken(&Principal{ID: 1, Email: "s@bucodel.edu", Kind: PrincipalStudent})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different", TokenExp: time.Hour, TokenIssuer: "bucodel.test"})
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("VerifyToken accepted token signed with a different secret")
	}
}

func TestVerifyToken_Empty(t *testing.T) {
	if _, err := newTestService(time.Hour).VerifyToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken(\"\") error = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer prefix", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractBearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
