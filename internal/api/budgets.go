package api

import (
	"context"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/session"
)

const budgetsPath = "/budgets"

func (c *Client) Budgets(ctx context.Context, sess session.Session) ([]core.Budget, error) {
	return getList[core.Budget](ctx, c, budgetsPath, sess)
}

func (c *Client) CreateBudget(ctx context.Context, sess session.Session, in core.BudgetInput) (core.Budget, error) {
	body, err := c.send(ctx, http.MethodPost, budgetsPath, sess, in)
	if err != nil {
		return core.Budget{}, err
	}
	return decodeObject[core.Budget](body)
}

func (c *Client) UpdateBudget(ctx context.Context, sess session.Session, id string, in core.BudgetInput) (core.Budget, error) {
	body, err := c.send(ctx, http.MethodPut, itemPath(budgetsPath, id), sess, in)
	if err != nil {
		return core.Budget{}, err
	}
	return decodeObject[core.Budget](body)
}

func (c *Client) DeleteBudget(ctx context.Context, sess session.Session, id string) error {
	_, err := c.send(ctx, http.MethodDelete, itemPath(budgetsPath, id), sess, nil)
	return err
}
