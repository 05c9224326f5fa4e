package cli

import (
	"context"
	"flag"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/session"
)

func (a *App) runTransactions(ctx context.Context, args []string) error {
	sess, err := a.Auth.RequireSession(ctx)
	if err != nil {
		return err
	}

	sub, args := subcommand(args)
	switch sub {
	case "list":
		return a.listTransactions(ctx, sess, args)
	case "add":
		return a.addTransaction(ctx, sess, args)
	case "edit":
		return a.editTransaction(ctx, sess, args)
	case "delete":
		positional, err := parse(a.flags("transactions delete"), args)
		if err != nil {
			return err
		}
		id, err := requireID(positional)
		if err != nil {
			return err
		}
		if err := a.Transactions.Delete(ctx, sess, id); err != nil {
			return err
		}
		fmt.Fprintf(a.Stdout, "Deleted transaction %s.\n", id)
		return nil
	default:
		return fmt.Errorf("%w: unknown transactions command %q", ErrUsage, sub)
	}
}

func (a *App) listTransactions(ctx context.Context, sess session.Session, args []string) error {
	fs := a.flags("transactions list")
	typ := fs.String("type", "all", "all, income or expense")
	minAmount := fs.String("min", "", "minimum amount")
	maxAmount := fs.String("max", "", "maximum amount")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	filter, err := core.ParseFilter(*typ, *minAmount, *maxAmount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	txs, err := a.Transactions.List(ctx, sess, filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.renderer(ctx).Transactions(txs))
	return nil
}

// transactionFlags registers the editable fields. Empty means "not given".
func transactionFlags(fs *flag.FlagSet) (typ, category, amount *string) {
	typ = fs.String("type", "", "income or expense")
	category = fs.String("category", "", "category name")
	amount = fs.String("amount", "", "amount, e.g. 12.50")
	return typ, category, amount
}

func (a *App) addTransaction(ctx context.Context, sess session.Session, args []string) error {
	fs := a.flags("transactions add")
	typ, category, amount := transactionFlags(fs)
	if _, err := parse(fs, args); err != nil {
		return err
	}

	in := core.TransactionInput{Type: core.Expense, Category: *category}
	if *typ != "" {
		in.Type = core.TransactionType(*typ)
	}
	if err := setAmount(&in.Amount, *amount); err != nil {
		return err
	}

	created, err := a.Transactions.Create(ctx, sess, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.renderer(ctx).Transactions([]core.Transaction{created}))
	return nil
}

func (a *App) editTransaction(ctx context.Context, sess session.Session, args []string) error {
	fs := a.flags("transactions edit")
	typ, category, amount := transactionFlags(fs)
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	id, err := requireID(positional)
	if err != nil {
		return err
	}

	all, err := a.Transactions.List(ctx, sess, core.TransactionFilter{})
	if err != nil {
		return err
	}
	var in core.TransactionInput
	found := false
	for _, tx := range all {
		if tx.ID == id {
			in, found = tx.Input(), true
			break
		}
	}
	if !found {
		return fmt.Errorf("transaction %s not found", id)
	}

	if *typ != "" {
		in.Type = core.TransactionType(*typ)
	}
	if *category != "" {
		in.Category = *category
	}
	if err := setAmount(&in.Amount, *amount); err != nil {
		return err
	}

	updated, err := a.Transactions.Update(ctx, sess, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.renderer(ctx).Transactions([]core.Transaction{updated}))
	return nil
}

func setAmount(dst *core.Amount, raw string) error {
	if raw == "" {
		return nil
	}
	v, err := core.ParseAmount(raw)
	if err != nil {
		return fmt.Errorf("%w: amount %q: %v", ErrUsage, raw, err)
	}
	*dst = v
	return nil
}

func (a *App) runBudgets(ctx context.Context, args []string) error {
	sess, err := a.Auth.RequireSession(ctx)
	if err != nil {
		return err
	}

	sub, args := subcommand(args)
	switch sub {
	case "list":
		if _, err := parse(a.flags("budgets list"), args); err != nil {
			return err
		}
		rows, err := a.Budgets.List(ctx, sess)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Stdout, a.renderer(ctx).Budgets(rows))
		return nil
	case "add":
		return a.addBudget(ctx, sess, args)
	case "edit":
		return a.editBudget(ctx, sess, args)
	case "delete":
		positional, err := parse(a.flags("budgets delete"), args)
		if err != nil {
			return err
		}
		id, err := requireID(positional)
		if err != nil {
			return err
		}
		if err := a.Budgets.Delete(ctx, sess, id); err != nil {
			return err
		}
		fmt.Fprintf(a.Stdout, "Deleted budget %s.\n", id)
		return nil
	default:
		return fmt.Errorf("%w: unknown budgets command %q", ErrUsage, sub)
	}
}

func budgetFlags(fs *flag.FlagSet) (category, amount, period *string) {
	category = fs.String("category", "", "category name")
	amount = fs.String("amount", "", "budget amount")
	period = fs.String("period", "", "monthly or yearly")
	return category, amount, period
}

func (a *App) addBudget(ctx context.Context, sess session.Session, args []string) error {
	fs := a.flags("budgets add")
	category, amount, period := budgetFlags(fs)
	if _, err := parse(fs, args); err != nil {
		return err
	}

	in := core.BudgetInput{Category: *category, Period: core.BudgetPeriod(*period)}
	if err := setAmount(&in.Amount, *amount); err != nil {
		return err
	}
	if _, err := a.Budgets.Create(ctx, sess, in); err != nil {
		return err
	}
	return a.showBudgets(ctx, sess)
}

func (a *App) editBudget(ctx context.Context, sess session.Session, args []string) error {
	fs := a.flags("budgets edit")
	category, amount, period := budgetFlags(fs)
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	id, err := requireID(positional)
	if err != nil {
		return err
	}

	rows, err := a.Budgets.List(ctx, sess)
	if err != nil {
		return err
	}
	var in core.BudgetInput
	found := false
	for _, row := range rows {
		if row.ID == id {
			in, found = row.Budget.Input(), true
			break
		}
	}
	if !found {
		return fmt.Errorf("budget %s not found", id)
	}

	if *category != "" {
		in.Category = *category
	}
	if *period != "" {
		in.Period = core.BudgetPeriod(*period)
	}
	if err := setAmount(&in.Amount, *amount); err != nil {
		return err
	}
	if _, err := a.Budgets.Update(ctx, sess, id, in); err != nil {
		return err
	}
	return a.showBudgets(ctx, sess)
}

func (a *App) showBudgets(ctx context.Context, sess session.Session) error {
	rows, err := a.Budgets.List(ctx, sess)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, a.renderer(ctx).Budgets(rows))
	return nil
}
