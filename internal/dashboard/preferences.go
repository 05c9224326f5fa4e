package dashboard

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/storage"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("invalid theme: must be light or dark")

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", ErrInvalidTheme
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences stores display settings under storage.KeyTheme.
type Preferences struct {
	kv storage.KV
}

func NewPreferences(kv storage.KV) *Preferences {
	return &Preferences{kv: kv}
}

// Theme returns the saved theme. Only an explicit "dark" selects dark;
// anything else, including no value, is light.
func (p *Preferences) Theme(ctx context.Context) (Theme, error) {
	if p.kv == nil {
		return ThemeLight, nil
	}
	v, ok, err := p.kv.Get(ctx, storage.KeyTheme)
	if err != nil {
		return ThemeLight, fmt.Errorf("read theme: %w", err)
	}
	if ok && Theme(v) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (p *Preferences) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if p.kv == nil {
		return nil
	}
	if err := p.kv.Set(ctx, storage.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
