package core

import (
	"sort"
	"time"

	"fintrack/internal/format"
)

// DailyAggregate is the income and expense total for one calendar day.
// Date is that day at midnight; it is zero for the undated bucket (Day 0).
type DailyAggregate struct {
	Day     int       `json:"day"`
	Date    time.Time `json:"-"`
	Income  Amount    `json:"income"`
	Expense Amount    `json:"expense"`
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// AggregateDaily groups transactions by UTC calendar day. See AggregateDailyIn.
func AggregateDaily(txs []Transaction) []DailyAggregate {
	return AggregateDailyIn(txs, time.UTC)
}

// AggregateDailyIn sums transaction amounts per calendar day, split by type.
//
// The grouping key is the full year/month/day of the effective date seen in
// loc (nil keeps each timestamp's own location), so the same day-of-month in
// different months stays in separate buckets. Transactions without any date
// land in a single Day 0 bucket, keeping the per-type sums equal to the
// input. Anything that is not income counts as expense. The result is
// ordered by Day, then by date, and the input is not modified.
func AggregateDailyIn(txs []Transaction, loc *time.Location) []DailyAggregate {
	if len(txs) == 0 {
		return []DailyAggregate{}
	}

	buckets := make(map[dayKey]*DailyAggregate)
	for _, tx := range txs {
		var key dayKey
		var date time.Time
		if when, ok := tx.EffectiveDate(); ok {
			if loc != nil {
				when = when.In(loc)
			}
			y, m, d := when.Date()
			key = dayKey{year: y, month: m, day: d}
			date = time.Date(y, m, d, 0, 0, 0, 0, when.Location())
		}

		acc, ok := buckets[key]
		if !ok {
			acc = &DailyAggregate{Day: key.day, Date: date}
			buckets[key] = acc
		}
		if tx.Type == Income {
			acc.Income = acc.Income.Add(tx.Amount)
		} else {
			acc.Expense = acc.Expense.Add(tx.Amount)
		}
	}

	out := make([]DailyAggregate, 0, len(buckets))
	for _, acc := range buckets {
		out = append(out, *acc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// MonthlySeries relabels server-side monthly rows for display. Nil input
// yields an empty series.
func MonthlySeries(rows []MonthlyAggregate) []MonthPoint {
	out := make([]MonthPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthPoint{
			Month:   format.MonthShortName(r.Month),
			Income:  r.Income,
			Expense: r.Expense,
		})
	}
	return out
}

// SumByType totals the amounts of a transaction list per type.
func SumByType(txs []Transaction) (income, expense Amount) {
	for _, tx := range txs {
		if tx.Type == Income {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense
}
