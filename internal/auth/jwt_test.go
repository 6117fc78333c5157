package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	s, err := NewSigner("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	token, err := s.Issue("session-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "session-1" {
		t.Errorf("expected session-1, got %q", id)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	a, _ := NewSigner("secret-a", time.Hour)
	b, _ := NewSigner("secret-b", time.Hour)

	token, _ := a.Issue("s")
	if _, err := b.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	s, _ := NewSigner("secret", time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }
	token, _ := s.Issue("s")

	now = now.Add(2 * time.Minute)
	if _, err := s.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	s, _ := NewSigner("secret", time.Minute)
	if _, err := s.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner("", time.Minute); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestNeedsRenewalAfterHalfLifetime(t *testing.T) {
	s, _ := NewSigner("secret", time.Hour)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	token, _ := s.Issue("s")
	tok, err := s.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if tok.SessionID != "s" {
		t.Errorf("expected session s, got %q", tok.SessionID)
	}
	if s.NeedsRenewal(tok) {
		t.Error("fresh token should not need renewal")
	}

	now = now.Add(31 * time.Minute)
	tok, err = s.Verify(token)
	if err != nil {
		t.Fatalf("verify after 31m: %v", err)
	}
	if !s.NeedsRenewal(tok) {
		t.Error("expected token past half its lifetime to need renewal")
	}

	renewed, _ := s.Issue(tok.SessionID)
	fresh, err := s.Verify(renewed)
	if err != nil {
		t.Fatalf("verify renewed: %v", err)
	}
	if s.NeedsRenewal(fresh) || fresh.SessionID != "s" {
		t.Errorf("unexpected renewed token %+v", fresh)
	}
}
