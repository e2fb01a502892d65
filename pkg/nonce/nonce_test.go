package nonce

import (
	"testing"
	"time"
)

func TestMintVerify(t *testing.T) {
	s := New(WithSecret("test-secret"))

	token := s.Mint("books_edit_42")
	if token == "" {
		t.Fatal("empty token")
	}
	if !s.Verify(token, "books_edit_42") {
		t.Fatal("freshly minted token rejected")
	}
	if s.Verify(token, "books_delete_42") {
		t.Fatal("token accepted for a different scope")
	}
	if s.Verify("", "books_edit_42") {
		t.Fatal("empty token accepted")
	}
	if s.Verify("deadbeefdeadbeef", "books_edit_42") {
		t.Fatal("forged token accepted")
	}
}

func TestVerify_PreviousTickStillValid(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	s := New(WithSecret("test-secret"), WithLifetime(time.Hour), WithClock(clock))

	token := s.Mint("books_create")

	current = current.Add(time.Hour)
	if !s.Verify(token, "books_create") {
		t.Fatal("token from previous tick rejected")
	}

	current = current.Add(time.Hour)
	if s.Verify(token, "books_create") {
		t.Fatal("expired token accepted")
	}
}

func TestDistinctSecretsDisagree(t *testing.T) {
	a := New(WithSecret("one"))
	b := New(WithSecret("two"))

	token := a.Mint("books_create")
	if b.Verify(token, "books_create") {
		t.Fatal("token verified across secrets")
	}
}
