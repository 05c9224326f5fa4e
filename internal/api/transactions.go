package api

import (
	"context"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/session"
)

const transactionsPath = "/transactions"

// Transactions lists all transactions, newest first as the API orders them.
func (c *Client) Transactions(ctx context.Context, sess session.Session) ([]core.Transaction, error) {
	return getList[core.Transaction](ctx, c, transactionsPath, sess)
}

func (c *Client) CreateTransaction(ctx context.Context, sess session.Session, in core.TransactionInput) (core.Transaction, error) {
	body, err := c.send(ctx, http.MethodPost, transactionsPath, sess, in)
	if err != nil {
		return core.Transaction{}, err
	}
	return decodeObject[core.Transaction](body)
}

func (c *Client) UpdateTransaction(ctx context.Context, sess session.Session, id string, in core.TransactionInput) (core.Transaction, error) {
	body, err := c.send(ctx, http.MethodPut, itemPath(transactionsPath, id), sess, in)
	if err != nil {
		return core.Transaction{}, err
	}
	return decodeObject[core.Transaction](body)
}

func (c *Client) DeleteTransaction(ctx context.Context, sess session.Session, id string) error {
	_, err := c.send(ctx, http.MethodDelete, itemPath(transactionsPath, id), sess, nil)
	return err
}
