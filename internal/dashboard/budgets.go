package dashboard

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/session"
)

// BudgetRow is a budget with its progress worked out for display.
type BudgetRow struct {
	core.Budget
	Percent   int
	Remaining core.Amount
}

func budgetRows(budgets []core.Budget) []BudgetRow {
	rows := make([]BudgetRow, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, BudgetRow{Budget: b, Percent: b.PercentSpent(), Remaining: b.Remaining()})
	}
	return rows
}

type Budgets struct {
	api    API
	logger *log.Logger
}

func NewBudgets(client API, logger *log.Logger) *Budgets {
	if logger == nil {
		logger = log.Discard()
	}
	return &Budgets{api: client, logger: logger.WithComponent(log.ComponentDashboard)}
}

func (b *Budgets) List(ctx context.Context, sess session.Session) ([]BudgetRow, error) {
	budgets, err := b.api.Budgets(ctx, sess)
	if err != nil {
		return nil, err
	}
	return budgetRows(budgets), nil
}

func (b *Budgets) Create(ctx context.Context, sess session.Session, in core.BudgetInput) (core.Budget, error) {
	if in.Period == "" {
		in.Period = core.Monthly
	}
	if err := in.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("invalid budget: %w", err)
	}
	created, err := b.api.CreateBudget(ctx, sess, in)
	if err != nil {
		return core.Budget{}, err
	}
	b.logger.DebugContext(ctx, "Budget created", log.FieldOperation, log.OpCreate, "id", created.ID)
	return created, nil
}

func (b *Budgets) Update(ctx context.Context, sess session.Session, id string, in core.BudgetInput) (core.Budget, error) {
	if id == "" {
		return core.Budget{}, ErrMissingID
	}
	if in.Period == "" {
		in.Period = core.Monthly
	}
	if err := in.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("invalid budget: %w", err)
	}
	updated, err := b.api.UpdateBudget(ctx, sess, id, in)
	if err != nil {
		return core.Budget{}, err
	}
	b.logger.DebugContext(ctx, "Budget updated", log.FieldOperation, log.OpUpdate, "id", id)
	return updated, nil
}

func (b *Budgets) Delete(ctx context.Context, sess session.Session, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := b.api.DeleteBudget(ctx, sess, id); err != nil {
		return err
	}
	b.logger.DebugContext(ctx, "Budget deleted", log.FieldOperation, log.OpDelete, "id", id)
	return nil
}
