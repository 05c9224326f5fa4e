package session

import (
	"context"
	"fmt"

	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Store reads and writes the token under storage.KeyToken. A Store without a
// backing KV behaves like storage that is unavailable: Token reports absent
// and writes do nothing.
type Store struct {
	kv     storage.KV
	logger *log.Logger
}

func NewStore(kv storage.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{kv: kv, logger: logger.WithComponent(log.ComponentSession)}
}

// Token returns the stored token and whether one exists. An empty stored
// token is reported as present.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	if s == nil || s.kv == nil {
		return "", false, nil
	}
	token, ok, err := s.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	return token, ok, nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	if s == nil || s.kv == nil {
		return nil
	}
	if err := s.kv.Set(ctx, storage.KeyToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	s.logger.DebugContext(ctx, "Token stored", log.FieldOperation, log.OpLogin)
	return nil
}

func (s *Store) ClearToken(ctx context.Context) error {
	if s == nil || s.kv == nil {
		return nil
	}
	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.logger.DebugContext(ctx, "Token cleared", log.FieldOperation, log.OpLogout)
	return nil
}

// Session loads the current session. No stored token yields Anonymous.
func (s *Store) Session(ctx context.Context) (Session, error) {
	token, ok, err := s.Token(ctx)
	if err != nil {
		return Anonymous, err
	}
	if !ok {
		return Anonymous, nil
	}
	return New(token), nil
}
