package dashboard

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/session"
)

// RecentLimit is the number of transactions on the overview.
const RecentLimit = 5

// Overview is the home screen. Every section loads on its own: a failed
// section carries its error and leaves the others intact.
type Overview struct {
	Totals    *core.Totals
	TotalsErr error

	Monthly    []core.MonthPoint
	MonthlyErr error

	Categories    []core.CategoryTotal
	CategoriesErr error

	Recent    []core.Transaction
	RecentErr error

	Budgets    []BudgetRow
	BudgetsErr error
}

// Err joins the section errors; nil when everything loaded.
func (o *Overview) Err() error {
	return errors.Join(
		sectionErr("totals", o.TotalsErr),
		sectionErr("monthly", o.MonthlyErr),
		sectionErr("categories", o.CategoriesErr),
		sectionErr("transactions", o.RecentErr),
		sectionErr("budgets", o.BudgetsErr),
	)
}

func sectionErr(section string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", section, err)
}

type Home struct {
	api    API
	logger *log.Logger
}

func NewHome(client API, logger *log.Logger) *Home {
	if logger == nil {
		logger = log.Discard()
	}
	return &Home{api: client, logger: logger.WithComponent(log.ComponentDashboard)}
}

// Overview loads all sections concurrently.
func (h *Home) Overview(ctx context.Context, sess session.Session) *Overview {
	var (
		o Overview
		g errgroup.Group
	)

	g.Go(func() error {
		totals, err := h.api.Totals(ctx, sess)
		if err != nil {
			o.TotalsErr = err
			return nil
		}
		o.Totals = &totals
		return nil
	})
	g.Go(func() error {
		rows, err := h.api.Monthly(ctx, sess)
		o.Monthly, o.MonthlyErr = core.MonthlySeries(rows), err
		return nil
	})
	g.Go(func() error {
		cats, err := h.api.Categories(ctx, sess)
		o.Categories, o.CategoriesErr = cats, err
		return nil
	})
	g.Go(func() error {
		txs, err := h.api.Transactions(ctx, sess)
		o.Recent, o.RecentErr = core.Recent(txs, RecentLimit), err
		return nil
	})
	g.Go(func() error {
		budgets, err := h.api.Budgets(ctx, sess)
		o.Budgets, o.BudgetsErr = budgetRows(budgets), err
		return nil
	})
	_ = g.Wait()

	for section, err := range map[string]error{
		"totals": o.TotalsErr, "monthly": o.MonthlyErr, "categories": o.CategoriesErr,
		"transactions": o.RecentErr, "budgets": o.BudgetsErr,
	} {
		if err != nil {
			h.logger.WarnContext(ctx, "Overview section failed", log.FieldSection, section, log.FieldError, err)
		}
	}
	return &o
}
