package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fintrack/internal/storage"
)

type failingKV struct {
	storage.KV
	err error
}

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error       { return f.err }
func (f failingKV) Delete(context.Context, string) error            { return f.err }

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryKV(), nil)

	if err := s.SetToken(ctx, "abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if tok, ok, err := s.Token(ctx); err != nil || !ok || tok != "abc" {
		t.Fatalf("Token() = %q, %v, %v; want abc, true, nil", tok, ok, err)
	}
	if err := s.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken() error = %v", err)
	}
	if tok, ok, err := s.Token(ctx); err != nil || ok || tok != "" {
		t.Errorf("Token() after clear = %q, %v, %v; want absent", tok, ok, err)
	}
}

func TestStoreEmptyTokenIsPresentButUnauthenticated(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemoryKV(), nil)
	if err := s.SetToken(ctx, ""); err != nil {
		t.Fatal(err)
	}

	sess, err := s.Session(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !sess.Present() || sess.Authenticated() {
		t.Errorf("session = present %v authenticated %v; want true, false", sess.Present(), sess.Authenticated())
	}
}

func TestStoreWithoutKVIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, nil)

	if err := s.SetToken(ctx, "abc"); err != nil {
		t.Errorf("SetToken() error = %v", err)
	}
	if err := s.ClearToken(ctx); err != nil {
		t.Errorf("ClearToken() error = %v", err)
	}
	if _, ok, err := s.Token(ctx); ok || err != nil {
		t.Errorf("Token() = %v, %v; want absent, nil", ok, err)
	}
	sess, err := s.Session(ctx)
	if err != nil || sess != Anonymous {
		t.Errorf("Session() = %+v, %v; want Anonymous", sess, err)
	}

	var nilStore *Store
	if _, ok, _ := nilStore.Token(ctx); ok {
		t.Error("nil store should report no token")
	}
}

func TestStorePropagatesStorageErrors(t *testing.T) {
	boom := errors.New("disk full")
	s := NewStore(failingKV{err: boom}, nil)
	ctx := context.Background()

	if _, _, err := s.Token(ctx); !errors.Is(err, boom) {
		t.Errorf("Token() error = %v, want %v", err, boom)
	}
	if err := s.SetToken(ctx, "x"); !errors.Is(err, boom) {
		t.Errorf("SetToken() error = %v, want %v", err, boom)
	}
	if _, err := s.Session(ctx); !errors.Is(err, boom) {
		t.Errorf("Session() error = %v, want %v", err, boom)
	}
}

func TestAnonymous(t *testing.T) {
	if Anonymous.Present() || Anonymous.Authenticated() || Anonymous.Token() != "" {
		t.Error("Anonymous must carry nothing")
	}
	if s := New("t"); !s.Authenticated() || s.Token() != "t" {
		t.Errorf("New(t) = %+v", s)
	}
}

func TestInspect(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(24 * time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	info, err := Inspect(signed)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if info.Subject != "user-42" {
		t.Errorf("Subject = %q, want user-42", info.Subject)
	}
	if !info.IssuedAt.Equal(issued) {
		t.Errorf("IssuedAt = %v, want %v", info.IssuedAt, issued)
	}
	if info.Expired(issued.Add(time.Hour)) || !info.Expired(issued.Add(48*time.Hour)) {
		t.Error("Expired() disagrees with exp claim")
	}
}

func TestInspectUserIDClaim(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "abc123"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	info, err := Inspect(signed)
	if err != nil {
		t.Fatal(err)
	}
	if info.Subject != "abc123" || info.Expired(time.Now()) {
		t.Errorf("info = %+v", info)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := Inspect(""); !errors.Is(err, ErrNoToken) {
		t.Errorf("Inspect(\"\") = %v, want ErrNoToken", err)
	}
	if _, err := Inspect("not-a-jwt"); err == nil {
		t.Error("Inspect(not-a-jwt) should fail")
	}
}
