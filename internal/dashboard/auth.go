package dashboard

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/api"
	"fintrack/internal/log"
	"fintrack/internal/session"
)

// RegisteredMessage is shown after a successful registration.
const RegisteredMessage = "Account created. You can now login."

type Auth struct {
	api      API
	sessions *session.Store
	logger   *log.Logger
}

func NewAuth(client API, sessions *session.Store, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.Discard()
	}
	return &Auth{api: client, sessions: sessions, logger: logger.WithComponent(log.ComponentDashboard)}
}

// Login exchanges credentials for a token and stores it.
func (a *Auth) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return session.Anonymous, ErrMissingCredentials
	}

	token, err := a.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return session.Anonymous, err
	}
	if err := a.sessions.SetToken(ctx, token); err != nil {
		return session.Anonymous, fmt.Errorf("save session: %w", err)
	}

	a.logger.InfoContext(ctx, "Logged in", log.FieldOperation, log.OpLogin)
	return session.New(token), nil
}

func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	_, err := a.api.Register(ctx, api.Registration{Name: strings.TrimSpace(name), Email: email, Password: password})
	return err
}

// Logout forgets the stored token. It never calls the API.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.sessions.ClearToken(ctx); err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "Logged out", log.FieldOperation, log.OpLogout)
	return nil
}

// RequireSession returns the stored session, or ErrNotLoggedIn when there is
// no token or the token is empty.
func (a *Auth) RequireSession(ctx context.Context) (session.Session, error) {
	sess, err := a.sessions.Session(ctx)
	if err != nil {
		return session.Anonymous, err
	}
	if !sess.Authenticated() {
		return session.Anonymous, ErrNotLoggedIn
	}
	return sess, nil
}
