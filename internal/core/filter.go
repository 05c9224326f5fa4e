package core

import "strings"

// TransactionFilter narrows a transaction list. An empty Type (or "all")
// matches both types; nil bounds are open.
type TransactionFilter struct {
	Type TransactionType
	Min  *Amount
	Max  *Amount
}

// ParseFilter builds a filter from raw form values; empty strings mean "no bound".
func ParseFilter(typ, min, max string) (TransactionFilter, error) {
	var f TransactionFilter

	switch t := TransactionType(strings.ToLower(strings.TrimSpace(typ))); t {
	case "", "all":
	case Income, Expense:
		f.Type = t
	default:
		return TransactionFilter{}, ErrInvalidType
	}

	if strings.TrimSpace(min) != "" {
		a, err := ParseAmount(min)
		if err != nil {
			return TransactionFilter{}, err
		}
		f.Min = &a
	}
	if strings.TrimSpace(max) != "" {
		a, err := ParseAmount(max)
		if err != nil {
			return TransactionFilter{}, err
		}
		f.Max = &a
	}
	return f, nil
}

func (f TransactionFilter) Match(tx Transaction) bool {
	if f.Type != "" && f.Type != "all" && tx.Type != f.Type {
		return false
	}
	if f.Min != nil && tx.Amount.Cmp(*f.Min) < 0 {
		return false
	}
	if f.Max != nil && tx.Amount.Cmp(*f.Max) > 0 {
		return false
	}
	return true
}

// Apply returns the matching transactions in their original order.
func (f TransactionFilter) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Recent returns at most n transactions from the head of the list, which the
// API orders newest first.
func Recent(txs []Transaction, n int) []Transaction {
	if n < 0 {
		n = 0
	}
	if len(txs) < n {
		n = len(txs)
	}
	return append([]Transaction(nil), txs[:n]...)
}
