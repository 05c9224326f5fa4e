// Package dashboard holds the view controllers: each one loads what a
// screen needs from the API, local storage and the insight cache.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/session"
)

var (
	// ErrNotLoggedIn means no usable token is stored; the user has to log in.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrMissingCredentials is returned before any call when a required
	// login or registration field is blank.
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingID          = errors.New("id is required")
)

// API is the part of the remote API the views use.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (string, error)
	Register(ctx context.Context, reg api.Registration) (api.Body, error)

	Totals(ctx context.Context, sess session.Session) (core.Totals, error)
	Monthly(ctx context.Context, sess session.Session) ([]core.MonthlyAggregate, error)
	Categories(ctx context.Context, sess session.Session) ([]core.CategoryTotal, error)
	Insights(ctx context.Context, sess session.Session) (json.RawMessage, core.Insights, error)

	Transactions(ctx context.Context, sess session.Session) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, sess session.Session, in core.TransactionInput) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, sess session.Session, id string, in core.TransactionInput) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, sess session.Session, id string) error

	Budgets(ctx context.Context, sess session.Session) ([]core.Budget, error)
	CreateBudget(ctx context.Context, sess session.Session, in core.BudgetInput) (core.Budget, error)
	UpdateBudget(ctx context.Context, sess session.Session, id string, in core.BudgetInput) (core.Budget, error)
	DeleteBudget(ctx context.Context, sess session.Session, id string) error
}

var _ API = (*api.Client)(nil)
