package jwt

import (
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret",
		Issuer:   "taskvault",
		Audience: "taskvault-api",
		TTL:      time.Hour,
	}
}

func TestIssueAndParseResolvesSubject(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for i := 0; i < 3; i++ {
		claims, err := svc.Parse(token)
		if err != nil {
			t.Fatalf("parse attempt %d: %v", i, err)
		}
		if claims.SubjectID() != "user-123" {
			t.Fatalf("unexpected subject %q", claims.SubjectID())
		}
		if claims.Username != "alice" {
			t.Fatalf("unexpected username %q", claims.Username)
		}
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = -time.Second
	svc := NewService(cfg)

	token, err := svc.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestParseRejectsWrongSigningKey(t *testing.T) {
	issuer := NewService(testConfig())
	other := testConfig()
	other.Secret = "another-secret"
	verifier := NewService(other)

	token, err := issuer.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	issuerCfg := testConfig()
	issuerCfg.Issuer = "someone-else"
	issuer := NewService(issuerCfg)
	verifier := NewService(testConfig())

	token, err := issuer.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrIssuerOrAudienceMismatch) {
		t.Fatalf("expected ErrIssuerOrAudienceMismatch, got %v", err)
	}
}

func TestParseRejectsAudienceMismatch(t *testing.T) {
	issuerCfg := testConfig()
	issuerCfg.Audience = "another-service"
	issuer := NewService(issuerCfg)
	verifier := NewService(testConfig())

	token, err := issuer.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrIssuerOrAudienceMismatch) {
		t.Fatalf("expected ErrIssuerOrAudienceMismatch, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewService(testConfig())
	if _, err := svc.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
