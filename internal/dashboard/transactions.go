package dashboard

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/session"
)

type Transactions struct {
	api    API
	logger *log.Logger
}

func NewTransactions(client API, logger *log.Logger) *Transactions {
	if logger == nil {
		logger = log.Discard()
	}
	return &Transactions{api: client, logger: logger.WithComponent(log.ComponentDashboard)}
}

// List returns the transactions that match f, in API order.
func (t *Transactions) List(ctx context.Context, sess session.Session, f core.TransactionFilter) ([]core.Transaction, error) {
	txs, err := t.api.Transactions(ctx, sess)
	if err != nil {
		return nil, err
	}
	return f.Apply(txs), nil
}

func (t *Transactions) Create(ctx context.Context, sess session.Session, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	created, err := t.api.CreateTransaction(ctx, sess, in)
	if err != nil {
		return core.Transaction{}, err
	}
	t.logger.DebugContext(ctx, "Transaction created", log.FieldOperation, log.OpCreate, "id", created.ID)
	return created, nil
}

// Update replaces the editable fields of transaction id.
func (t *Transactions) Update(ctx context.Context, sess session.Session, id string, in core.TransactionInput) (core.Transaction, error) {
	if id == "" {
		return core.Transaction{}, ErrMissingID
	}
	if err := in.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	updated, err := t.api.UpdateTransaction(ctx, sess, id, in)
	if err != nil {
		return core.Transaction{}, err
	}
	t.logger.DebugContext(ctx, "Transaction updated", log.FieldOperation, log.OpUpdate, "id", id)
	return updated, nil
}

func (t *Transactions) Delete(ctx context.Context, sess session.Session, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := t.api.DeleteTransaction(ctx, sess, id); err != nil {
		return err
	}
	t.logger.DebugContext(ctx, "Transaction deleted", log.FieldOperation, log.OpDelete, "id", id)
	return nil
}
