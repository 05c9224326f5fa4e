package core

import "encoding/json"

// Totals is the GET /reports/totals payload. Older API builds spell the
// expense field "expenses"; both are accepted.
type Totals struct {
	Income  Amount `json:"income"`
	Expense Amount `json:"expense"`
	Balance Amount `json:"balance"`
}

func (t *Totals) UnmarshalJSON(b []byte) error {
	var aux struct {
		Income   Amount  `json:"income"`
		Expense  *Amount `json:"expense"`
		Expenses *Amount `json:"expenses"`
		Balance  Amount  `json:"balance"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.Income = aux.Income
	t.Balance = aux.Balance
	switch {
	case aux.Expense != nil:
		t.Expense = *aux.Expense
	case aux.Expenses != nil:
		t.Expense = *aux.Expenses
	default:
		t.Expense = Amount{}
	}
	return nil
}

// MonthlyAggregate is one row of GET /reports/monthly, aggregated server side.
type MonthlyAggregate struct {
	Month   int    `json:"_id"` // 1-12
	Income  Amount `json:"income"`
	Expense Amount `json:"expense"`
}

// MonthPoint is a chart-ready monthly row with a display label.
type MonthPoint struct {
	Month   string `json:"month"`
	Income  Amount `json:"income"`
	Expense Amount `json:"expense"`
}

// CategoryTotal is one row of GET /reports/categories.
type CategoryTotal struct {
	Name  string `json:"_id"`
	Total Amount `json:"total"`
}

type (
	// Insights is the GET /reports/ai-insights payload.
	Insights struct {
		FinancialData FinancialData `json:"financialData"`
		AIInsights    string        `json:"aiInsights"`
	}

	FinancialData struct {
		CurrentMonth *MonthSnapshot `json:"currentMonth"`
	}

	MonthSnapshot struct {
		Month    int    `json:"month"`
		Year     int    `json:"year"`
		Income   Amount `json:"income"`
		Expenses Amount `json:"expenses"`
		Balance  Amount `json:"balance"`
	}
)

// CurrentMonth returns the month snapshot or nil when the report has none.
func (i *Insights) CurrentMonth() *MonthSnapshot {
	if i == nil {
		return nil
	}
	return i.FinancialData.CurrentMonth
}
