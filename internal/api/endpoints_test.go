package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/session"
)

// fakeAPI routes "METHOD /path" to canned JSON responses and records bodies.
type fakeAPI struct {
	routes map[string]func(w http.ResponseWriter, r *http.Request)

	mu     sync.Mutex
	bodies map[string]string
}

func (f *fakeAPI) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{routes: map[string]func(http.ResponseWriter, *http.Request){}, bodies: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies[key] = string(b)
		f.mu.Unlock()
		h, ok := f.routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, NewClient(srv.URL+"/api", WithHTTPClient(srv.Client()))
}

func jsonReply(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestLogin(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["POST /api/auth/login"] = jsonReply(200, `{"token":"jwt-123"}`)

	token, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil || token != "jwt-123" {
		t.Fatalf("Login() = %q, %v", token, err)
	}
	var sent Credentials
	if err := json.Unmarshal([]byte(f.body("POST /api/auth/login")), &sent); err != nil || sent.Email != "a@b.c" || sent.Password != "pw" {
		t.Errorf("sent body = %s", f.body("POST /api/auth/login"))
	}
}

func TestLoginWithoutToken(t *testing.T) {
	for _, body := range []string{`{}`, `{"token":""}`, `null`, `[]`} {
		f, c := newFakeAPI(t)
		f.routes["POST /api/auth/login"] = jsonReply(200, body)
		if _, err := c.Login(context.Background(), Credentials{}); !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("Login() with %s error = %v, want ErrInvalidResponse", body, err)
		}
	}
	if ErrInvalidResponse.Error() != "Invalid response from server" {
		t.Errorf("unexpected message %q", ErrInvalidResponse)
	}
}

func TestLoginRejected(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["POST /api/auth/login"] = jsonReply(401, `{"error":"Invalid credentials"}`)

	_, err := c.Login(context.Background(), Credentials{})
	if err == nil || err.Error() != "Invalid credentials" || !IsUnauthorized(err) {
		t.Errorf("Login() error = %v", err)
	}
}

func TestRegister(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["POST /api/auth/register"] = jsonReply(201, `{"message":"ok"}`)

	body, err := c.Register(context.Background(), Registration{Name: "Ann", Email: "ann@x.io", Password: "pw"})
	if err != nil || body.Kind != BodyJSON {
		t.Fatalf("Register() = %+v, %v", body, err)
	}
	if got := f.body("POST /api/auth/register"); got != `{"name":"Ann","email":"ann@x.io","password":"pw"}` {
		t.Errorf("sent body = %s", got)
	}
}

func TestReports(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["GET /api/reports/totals"] = jsonReply(200, `{"income":1000,"expenses":250.5,"balance":749.5}`)
	f.routes["GET /api/reports/monthly"] = jsonReply(200, `[{"_id":1,"income":10,"expense":5}]`)
	f.routes["GET /api/reports/categories"] = jsonReply(200, `null`)
	ctx := context.Background()
	sess := session.New("t")

	totals, err := c.Totals(ctx, sess)
	if err != nil {
		t.Fatal(err)
	}
	if totals.Expense.String() != "250.5" {
		t.Errorf("Totals().Expense = %s, want 250.5", totals.Expense)
	}

	monthly, err := c.Monthly(ctx, sess)
	if err != nil || len(monthly) != 1 || monthly[0].Month != 1 {
		t.Errorf("Monthly() = %+v, %v", monthly, err)
	}

	cats, err := c.Categories(ctx, sess)
	if err != nil || cats == nil || len(cats) != 0 {
		t.Errorf("Categories() = %#v, %v; want empty list for null body", cats, err)
	}
}

func TestInsightsKeepsRawPayload(t *testing.T) {
	f, c := newFakeAPI(t)
	payload := `{"financialData":{"currentMonth":{"month":4,"year":2025,"income":1,"expenses":2,"balance":-1}},"aiInsights":"**Hi**"}`
	f.routes["GET /api/reports/ai-insights"] = jsonReply(200, payload)

	raw, ins, err := c.Insights(context.Background(), session.New("t"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != payload {
		t.Errorf("raw = %s", raw)
	}
	if ins.AIInsights != "**Hi**" || ins.CurrentMonth().Month != 4 {
		t.Errorf("decoded = %+v", ins)
	}
}

func TestReportShapeMismatch(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["GET /api/reports/monthly"] = jsonReply(200, `{"not":"a list"}`)

	if _, err := c.Monthly(context.Background(), session.New("t")); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Monthly() error = %v, want ErrInvalidResponse", err)
	}
}

func TestTransactionCRUD(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["GET /api/transactions"] = jsonReply(200, `[{"_id":"t1","type":"expense","category":"Food","amount":12,"date":"2025-03-01T10:00:00Z"}]`)
	f.routes["POST /api/transactions"] = jsonReply(201, `{"_id":"t2","type":"income","category":"Salary","amount":3000}`)
	f.routes["PUT /api/transactions/t2"] = jsonReply(200, `{"_id":"t2","type":"income","category":"Salary","amount":3100}`)
	f.routes["DELETE /api/transactions/t2"] = jsonReply(200, `{"message":"deleted"}`)
	ctx := context.Background()
	sess := session.New("t")

	list, err := c.Transactions(ctx, sess)
	if err != nil || len(list) != 1 || list[0].ID != "t1" || list[0].Date.IsZero() {
		t.Fatalf("Transactions() = %+v, %v", list, err)
	}

	in := core.TransactionInput{Type: core.Income, Category: "Salary", Amount: core.AmountFromInt(3000)}
	created, err := c.CreateTransaction(ctx, sess, in)
	if err != nil || created.ID != "t2" {
		t.Fatalf("CreateTransaction() = %+v, %v", created, err)
	}
	if got := f.body("POST /api/transactions"); got != `{"type":"income","category":"Salary","amount":3000}` {
		t.Errorf("create body = %s", got)
	}

	in.Amount = core.AmountFromInt(3100)
	updated, err := c.UpdateTransaction(ctx, sess, "t2", in)
	if err != nil || updated.Amount.String() != "3100" {
		t.Fatalf("UpdateTransaction() = %+v, %v", updated, err)
	}

	if err := c.DeleteTransaction(ctx, sess, "t2"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if err := c.DeleteTransaction(ctx, sess, "missing"); StatusCode(err) != http.StatusNotFound {
		t.Errorf("DeleteTransaction(missing) status = %d, want 404", StatusCode(err))
	}
}

func TestBudgetCRUD(t *testing.T) {
	f, c := newFakeAPI(t)
	f.routes["GET /api/budgets"] = jsonReply(200, `[{"_id":"b1","category":"Rent","amount":900,"spent":450,"period":"monthly"}]`)
	f.routes["POST /api/budgets"] = jsonReply(201, `{"_id":"b2","category":"Fun","amount":100,"spent":0,"period":"yearly"}`)
	f.routes["PUT /api/budgets/b2"] = jsonReply(200, `{"_id":"b2","category":"Fun","amount":120,"spent":0,"period":"yearly"}`)
	f.routes["DELETE /api/budgets/b2"] = func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }
	ctx := context.Background()
	sess := session.New("t")

	list, err := c.Budgets(ctx, sess)
	if err != nil || len(list) != 1 || list[0].PercentSpent() != 50 {
		t.Fatalf("Budgets() = %+v, %v", list, err)
	}

	in := core.BudgetInput{Category: "Fun", Amount: core.AmountFromInt(100), Period: core.Yearly}
	if b, err := c.CreateBudget(ctx, sess, in); err != nil || b.ID != "b2" {
		t.Fatalf("CreateBudget() = %+v, %v", b, err)
	}
	in.Amount = core.AmountFromInt(120)
	if b, err := c.UpdateBudget(ctx, sess, "b2", in); err != nil || b.Amount.String() != "120" {
		t.Fatalf("UpdateBudget() = %+v, %v", b, err)
	}
	if err := c.DeleteBudget(ctx, sess, "b2"); err != nil {
		t.Fatalf("DeleteBudget() error = %v", err)
	}
}
