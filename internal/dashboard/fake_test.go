package dashboard

import (
	"context"
	"encoding/json"
	"sync"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/session"
)

// fakeAPI is an in-memory API. Set an *Err field to make that call fail.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	token    string
	loginErr error
	regErr   error

	totals     core.Totals
	totalsErr  error
	monthly    []core.MonthlyAggregate
	monthlyErr error
	categories []core.CategoryTotal
	catErr     error

	insightsRaw json.RawMessage
	insightsErr error

	txs    []core.Transaction
	txErr  error
	budget []core.Budget
	budErr error

	lastSession session.Session
}

func (f *fakeAPI) record(name string, sess session.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.lastSession = sess
}

func (f *fakeAPI) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeAPI) Login(_ context.Context, creds api.Credentials) (string, error) {
	f.record("login", session.Anonymous)
	return f.token, f.loginErr
}

func (f *fakeAPI) Register(context.Context, api.Registration) (api.Body, error) {
	f.record("register", session.Anonymous)
	return api.Body{}, f.regErr
}

func (f *fakeAPI) Totals(_ context.Context, sess session.Session) (core.Totals, error) {
	f.record("totals", sess)
	return f.totals, f.totalsErr
}

func (f *fakeAPI) Monthly(_ context.Context, sess session.Session) ([]core.MonthlyAggregate, error) {
	f.record("monthly", sess)
	if f.monthlyErr != nil {
		return nil, f.monthlyErr
	}
	return f.monthly, nil
}

func (f *fakeAPI) Categories(_ context.Context, sess session.Session) ([]core.CategoryTotal, error) {
	f.record("categories", sess)
	return f.categories, f.catErr
}

func (f *fakeAPI) Insights(_ context.Context, sess session.Session) (json.RawMessage, core.Insights, error) {
	f.record("insights", sess)
	if f.insightsErr != nil {
		return nil, core.Insights{}, f.insightsErr
	}
	var ins core.Insights
	if err := json.Unmarshal(f.insightsRaw, &ins); err != nil {
		return nil, core.Insights{}, err
	}
	return f.insightsRaw, ins, nil
}

func (f *fakeAPI) Transactions(_ context.Context, sess session.Session) ([]core.Transaction, error) {
	f.record("transactions", sess)
	if f.txErr != nil {
		return nil, f.txErr
	}
	return append([]core.Transaction(nil), f.txs...), nil
}

func (f *fakeAPI) CreateTransaction(_ context.Context, sess session.Session, in core.TransactionInput) (core.Transaction, error) {
	f.record("create-transaction", sess)
	return core.Transaction{ID: "new", Type: in.Type, Category: in.Category, Amount: in.Amount}, f.txErr
}

func (f *fakeAPI) UpdateTransaction(_ context.Context, sess session.Session, id string, in core.TransactionInput) (core.Transaction, error) {
	f.record("update-transaction", sess)
	return core.Transaction{ID: id, Type: in.Type, Category: in.Category, Amount: in.Amount}, f.txErr
}

func (f *fakeAPI) DeleteTransaction(_ context.Context, sess session.Session, id string) error {
	f.record("delete-transaction", sess)
	return f.txErr
}

func (f *fakeAPI) Budgets(_ context.Context, sess session.Session) ([]core.Budget, error) {
	f.record("budgets", sess)
	if f.budErr != nil {
		return nil, f.budErr
	}
	return f.budget, nil
}

func (f *fakeAPI) CreateBudget(_ context.Context, sess session.Session, in core.BudgetInput) (core.Budget, error) {
	f.record("create-budget", sess)
	return core.Budget{ID: "new", Category: in.Category, Amount: in.Amount, Period: in.Period}, f.budErr
}

func (f *fakeAPI) UpdateBudget(_ context.Context, sess session.Session, id string, in core.BudgetInput) (core.Budget, error) {
	f.record("update-budget", sess)
	return core.Budget{ID: id, Category: in.Category, Amount: in.Amount, Period: in.Period}, f.budErr
}

func (f *fakeAPI) DeleteBudget(_ context.Context, sess session.Session, id string) error {
	f.record("delete-budget", sess)
	return f.budErr
}

var _ API = (*fakeAPI)(nil)
