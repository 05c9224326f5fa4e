package core

import (
	"encoding/json"
	"testing"
	"time"
)

func day(y int, m time.Month, d, hour int) Timestamp {
	return NewTimestamp(time.Date(y, m, d, hour, 0, 0, 0, time.UTC))
}

func amt(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func TestAggregateDailyMergesSameDay(t *testing.T) {
	d1 := day(2025, time.March, 4, 9)
	d2 := day(2025, time.March, 9, 18)
	txs := []Transaction{
		{Type: Income, Amount: amt("100"), Date: d1},
		{Type: Expense, Amount: amt("40"), Date: day(2025, time.March, 4, 21)},
		{Type: Income, Amount: amt("10"), Date: d2},
	}

	got := AggregateDaily(txs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Day != 4 || !got[0].Income.Equal(amt("100")) || !got[0].Expense.Equal(amt("40")) {
		t.Errorf("first bucket = %+v, want day 4 income 100 expense 40", got[0])
	}
	if got[1].Day != 9 || !got[1].Income.Equal(amt("10")) || !got[1].Expense.IsZero() {
		t.Errorf("second bucket = %+v, want day 9 income 10 expense 0", got[1])
	}
}

func TestAggregateDailyEmpty(t *testing.T) {
	for _, in := range [][]Transaction{nil, {}} {
		got := AggregateDaily(in)
		if got == nil || len(got) != 0 {
			t.Errorf("AggregateDaily(%v) = %#v, want empty non-nil slice", in, got)
		}
	}
}

func TestAggregateDailyKeepsMonthsApart(t *testing.T) {
	txs := []Transaction{
		{Type: Expense, Amount: amt("5"), Date: day(2025, time.February, 7, 12)},
		{Type: Expense, Amount: amt("7"), Date: day(2025, time.January, 7, 12)},
		{Type: Income, Amount: amt("1"), Date: day(2025, time.January, 2, 12)},
	}

	got := AggregateDaily(txs)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (same day-of-month in different months must not merge): %+v", len(got), got)
	}
	if got[0].Day != 2 {
		t.Errorf("got[0].Day = %d, want 2", got[0].Day)
	}
	// day 7 ties are broken chronologically
	if got[1].Date.Month() != time.January || got[2].Date.Month() != time.February {
		t.Errorf("day 7 buckets out of order: %v, %v", got[1].Date, got[2].Date)
	}
}

func TestAggregateDailyMalformedInput(t *testing.T) {
	payload := `[
		{"_id":"1","type":"income","amount":"12.5","date":"2025-05-01T10:00:00.000Z"},
		{"_id":"2","type":"expense","date":"2025-05-01T11:00:00Z"},
		{"_id":"3","type":"expense","amount":"abc","createdAt":"2025-05-02T08:00:00Z"},
		{"_id":"4","type":"expense","amount":3,"date":"not a date"},
		{"_id":"5","type":"transfer","amount":2,"date":"2025-05-02"}
	]`
	var txs []Transaction
	if err := json.Unmarshal([]byte(payload), &txs); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := AggregateDaily(txs)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (undated, day 1, day 2): %+v", len(got), got)
	}

	undated := got[0]
	if undated.Day != 0 || !undated.Date.IsZero() || !undated.Expense.Equal(amt("3")) {
		t.Errorf("undated bucket = %+v", undated)
	}
	if !got[1].Income.Equal(amt("12.5")) || !got[1].Expense.IsZero() {
		t.Errorf("day 1 = %+v, want income 12.5 expense 0", got[1])
	}
	// createdAt fallback, bad amount reads as zero, unknown type counts as expense
	if got[2].Day != 2 || !got[2].Expense.Equal(amt("2")) {
		t.Errorf("day 2 = %+v, want expense 2", got[2])
	}
}

func TestAggregateDailyPreservesTotals(t *testing.T) {
	var txs []Transaction
	for i := 0; i < 90; i++ {
		typ := Expense
		if i%3 == 0 {
			typ = Income
		}
		txs = append(txs, Transaction{
			Type:   typ,
			Amount: AmountFromInt(int64(i + 1)),
			Date:   NewTimestamp(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * 20 * time.Hour)),
		})
	}
	snapshot := append([]Transaction(nil), txs...)

	wantIncome, wantExpense := SumByType(txs)
	var gotIncome, gotExpense Amount
	for _, b := range AggregateDaily(txs) {
		gotIncome = gotIncome.Add(b.Income)
		gotExpense = gotExpense.Add(b.Expense)
	}
	if !gotIncome.Equal(wantIncome) || !gotExpense.Equal(wantExpense) {
		t.Errorf("bucket sums income=%s expense=%s, want %s %s", gotIncome, gotExpense, wantIncome, wantExpense)
	}
	for i := range txs {
		if txs[i] != snapshot[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestAggregateDailyInLocation(t *testing.T) {
	// 23:30 UTC on the 1st is already the 2nd in UTC+2
	tz := time.FixedZone("UTC+2", 2*60*60)
	txs := []Transaction{{Type: Income, Amount: amt("1"), Date: NewTimestamp(time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC))}}

	if got := AggregateDailyIn(txs, nil); got[0].Day != 1 {
		t.Errorf("own location day = %d, want 1", got[0].Day)
	}
	if got := AggregateDailyIn(txs, tz); got[0].Day != 2 {
		t.Errorf("UTC+2 day = %d, want 2", got[0].Day)
	}
}

func TestAggregateDailyUsesUTC(t *testing.T) {
	var txs []Transaction
	if err := json.Unmarshal([]byte(`[
		{"type":"expense","amount":5,"date":"2025-03-05T23:30:00-05:00"},
		{"type":"expense","amount":2,"createdAt":"2025-03-06T01:00:00Z"},
		{"type":"income","amount":1,"createdAt":"2025-03-05T01:00:00Z"}
	]`), &txs); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := AggregateDaily(txs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Day != 5 || !got[0].Income.Equal(amt("1")) || !got[0].Expense.IsZero() {
		t.Errorf("got[0] = %+v, want day 5 with income 1", got[0])
	}
	if got[1].Day != 6 || !got[1].Expense.Equal(amt("7")) {
		t.Errorf("got[1] = %+v, want day 6 with expense 7", got[1])
	}
	if got[1].Date.Location() != time.UTC {
		t.Errorf("bucket date location = %v, want UTC", got[1].Date.Location())
	}
}

func TestMonthlySeries(t *testing.T) {
	var rows []MonthlyAggregate
	if err := json.Unmarshal([]byte(`[{"_id":1,"income":100,"expense":40},{"_id":12,"income":5}]`), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := MonthlySeries(rows)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Month != "Jan" || !got[0].Income.Equal(amt("100")) || !got[0].Expense.Equal(amt("40")) {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Month != "Dec" || !got[1].Expense.IsZero() {
		t.Errorf("got[1] = %+v", got[1])
	}

	if s := MonthlySeries(nil); s == nil || len(s) != 0 {
		t.Errorf("MonthlySeries(nil) = %#v, want empty", s)
	}
}
