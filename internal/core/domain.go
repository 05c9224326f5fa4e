// Package core holds the finance domain as the remote API returns it and
// the client-side shaping used by the dashboard views.
package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"

	DefaultCategory = "General"
)

type (
	TransactionType string

	BudgetPeriod string

	Transaction struct {
		ID        string          `json:"_id"`
		Type      TransactionType `json:"type"`
		Category  string          `json:"category"`
		Amount    Amount          `json:"amount"`
		Date      Timestamp       `json:"date"`
		CreatedAt Timestamp       `json:"createdAt"`
	}

	// TransactionInput is the body of POST /transactions and PUT /transactions/{id}.
	TransactionInput struct {
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Amount   Amount          `json:"amount"`
	}

	Budget struct {
		ID       string       `json:"_id"`
		Category string       `json:"category"`
		Amount   Amount       `json:"amount"`
		Spent    Amount       `json:"spent"`
		Period   BudgetPeriod `json:"period"`
	}

	// BudgetInput is the body of POST /budgets and PUT /budgets/{id}.
	BudgetInput struct {
		Category string       `json:"category"`
		Amount   Amount       `json:"amount"`
		Period   BudgetPeriod `json:"period"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type: must be income or expense")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidPeriod   = errors.New("invalid budget period: must be monthly or yearly")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (p BudgetPeriod) Valid() bool {
	return p == Monthly || p == Yearly
}

// EffectiveDate is the explicit date, falling back to the creation time.
// ok is false when neither is set.
func (t Transaction) EffectiveDate() (time.Time, bool) {
	if !t.Date.IsZero() {
		return t.Date.Time, true
	}
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt.Time, true
	}
	return time.Time{}, false
}

// Input returns the editable fields of the transaction.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{Type: t.Type, Category: t.Category, Amount: t.Amount}
}

func (in TransactionInput) Validate() error {
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if err := validateCategory(in.Category); err != nil {
		return err
	}
	if in.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func (in BudgetInput) Validate() error {
	if err := validateCategory(in.Category); err != nil {
		return err
	}
	if in.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !in.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

func validateCategory(c string) error {
	if strings.TrimSpace(c) == "" {
		return ErrEmptyCategory
	}
	if len(c) > 100 {
		return ErrCategoryTooLong
	}
	return nil
}

// Input returns the editable fields of the budget.
func (b Budget) Input() BudgetInput {
	period := b.Period
	if period == "" {
		period = Monthly
	}
	return BudgetInput{Category: b.Category, Amount: b.Amount, Period: period}
}

// PercentSpent is spent/amount as a whole percentage capped at 100.
// A zero budget divides by one so that any spending shows as overrun.
func (b Budget) PercentSpent() int {
	denom := b.Amount.Decimal()
	if denom.IsZero() {
		denom = AmountFromInt(1).Decimal()
	}
	pct := b.Spent.Decimal().Div(denom).Shift(2).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// Remaining is amount minus spent; negative once the budget is overrun.
func (b Budget) Remaining() Amount {
	return b.Amount.Sub(b.Spent)
}
