// Package render draws the dashboard views for the terminal.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"fintrack/internal/core"
	"fintrack/internal/dashboard"
	"fintrack/internal/format"
	"fintrack/internal/markdown"
)

const (
	defaultBarWidth = 30
	progressWidth   = 20
	dateLayout      = "2006-01-02"
)

type Renderer struct {
	t        Theme
	barWidth int
}

func New(t Theme) *Renderer {
	return &Renderer{t: t, barWidth: defaultBarWidth}
}

func (r *Renderer) Theme() Theme { return r.t }

func (r *Renderer) section(title string, body string) string {
	return r.t.Title.Render(title) + "\n" + body
}

// Error renders a failure the way views show inline errors.
func (r *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	return r.t.Error.Render(err.Error())
}

// Overview renders the home screen.
func (r *Renderer) Overview(o *dashboard.Overview) string {
	var parts []string

	var balance, income, expense string
	switch {
	case o.Totals != nil:
		balance = format.Currency(o.Totals.Balance)
		income = format.Currency(o.Totals.Income)
		expense = format.Currency(o.Totals.Expense)
	default:
		balance, income, expense = format.Placeholder, format.Placeholder, format.Placeholder
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		r.kpi("Total Balance", balance, r.t.Value),
		r.kpi("Total Income", income, r.t.Income),
		r.kpi("Total Expenses", expense, r.t.Expense),
	)
	parts = append(parts, cards)
	if o.TotalsErr != nil {
		parts = append(parts, r.Error(o.TotalsErr))
	}

	parts = append(parts, r.section("Analytics Report", r.orError(o.MonthlyErr, func() string {
		return r.MonthlyChart(o.Monthly)
	})))
	parts = append(parts, r.section("Latest Activity", r.orError(o.RecentErr, func() string {
		return r.Transactions(o.Recent)
	})))
	parts = append(parts, r.section("Top Expense Categories", r.orError(o.CategoriesErr, func() string {
		return r.Categories(o.Categories)
	})))
	parts = append(parts, r.section("Budgets", r.orError(o.BudgetsErr, func() string {
		return r.Budgets(o.Budgets)
	})))

	return strings.Join(parts, "\n\n")
}

func (r *Renderer) orError(err error, body func() string) string {
	if err != nil {
		return r.Error(err)
	}
	return body()
}

func (r *Renderer) kpi(title, value string, valueStyle lipgloss.Style) string {
	return r.t.Card.Render(r.t.Label.Render(title) + "\n" + valueStyle.Render(value))
}

func (r *Renderer) Categories(cats []core.CategoryTotal) string {
	if len(cats) == 0 {
		return r.t.Muted.Render("No category data.")
	}
	width := 0
	for _, c := range cats {
		width = max(width, lipgloss.Width(c.Name))
	}
	lines := make([]string, 0, len(cats))
	for _, c := range cats {
		name := c.Name + strings.Repeat(" ", width-lipgloss.Width(c.Name))
		lines = append(lines, r.t.Value.Render(name)+"  "+r.t.Label.Render(format.Currency(c.Total)))
	}
	return strings.Join(lines, "\n")
}

// Transactions renders a transaction table.
func (r *Renderer) Transactions(txs []core.Transaction) string {
	if len(txs) == 0 {
		return r.t.Muted.Render("No transactions.")
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		date := format.Placeholder
		if when, ok := tx.EffectiveDate(); ok {
			date = when.Format(dateLayout)
		}
		amount := format.Currency(tx.Amount)
		if tx.Type == core.Expense {
			amount = "-" + amount
		}
		rows = append(rows, []string{tx.ID, date, string(tx.Type), tx.Category, amount})
	}

	types := make([]core.TransactionType, len(txs))
	for i, tx := range txs {
		types[i] = tx.Type
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.t.Palette.Border)).
		Headers("ID", "Date", "Type", "Category", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.t.Header
			}
			if col == 4 && row >= 0 && row < len(types) {
				if types[row] == core.Income {
					return r.t.Cell.Foreground(r.t.Palette.Income).Align(lipgloss.Right)
				}
				return r.t.Cell.Foreground(r.t.Palette.Expense).Align(lipgloss.Right)
			}
			return r.t.Cell
		}).
		String()
}

// Budgets renders one line per budget with a progress bar.
func (r *Renderer) Budgets(rows []dashboard.BudgetRow) string {
	if len(rows) == 0 {
		return r.t.Muted.Render("No budgets yet.")
	}
	out := make([]string, 0, len(rows))
	for _, b := range rows {
		period := string(b.Period)
		if period == "" {
			period = string(core.Monthly)
		}
		barStyle := r.t.Income
		if b.Percent >= 100 {
			barStyle = r.t.Expense
		} else if b.Percent >= 80 {
			barStyle = r.t.Warning
		}
		filled := min(max(b.Percent, 0), 100) * progressWidth / 100
		bar := barStyle.Render(strings.Repeat("█", filled)) + r.t.Label.Render(strings.Repeat("░", progressWidth-filled))

		head := r.t.Value.Render(b.Category) + " " + r.t.Label.Render("("+period+")")
		if b.ID != "" {
			head += " " + r.t.Muted.Render(b.ID)
		}
		detail := fmt.Sprintf("%s %3d%%  %s spent  %s left",
			bar, b.Percent, format.Currency(b.Spent), format.Currency(b.Remaining))
		out = append(out, head+"\n"+detail)
	}
	return strings.Join(out, "\n")
}

type barRow struct {
	label           string
	income, expense core.Amount
}

// MonthlyChart draws income and expense bars per month.
func (r *Renderer) MonthlyChart(points []core.MonthPoint) string {
	rows := make([]barRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, barRow{label: p.Month, income: p.Income, expense: p.Expense})
	}
	return r.bars(rows, "No monthly data.")
}

// DailyChart draws income and expense bars per day. The undated bucket is
// labelled "?".
func (r *Renderer) DailyChart(days []core.DailyAggregate) string {
	rows := make([]barRow, 0, len(days))
	for _, d := range days {
		label := "?"
		if !d.Date.IsZero() {
			label = d.Date.Format("Jan 02")
		} else if d.Day > 0 {
			label = strconv.Itoa(d.Day)
		}
		rows = append(rows, barRow{label: label, income: d.Income, expense: d.Expense})
	}
	return r.bars(rows, "No daily data.")
}

func (r *Renderer) bars(rows []barRow, empty string) string {
	if len(rows) == 0 {
		return r.t.Muted.Render(empty)
	}

	var peak float64
	labelWidth := 0
	for _, row := range rows {
		peak = math.Max(peak, math.Max(row.income.Float64(), row.expense.Float64()))
		labelWidth = max(labelWidth, lipgloss.Width(row.label))
	}

	scale := func(a core.Amount) int {
		if peak <= 0 {
			return 0
		}
		return max(0, int(math.Round(a.Float64()/peak*float64(r.barWidth))))
	}

	lines := make([]string, 0, len(rows)*2)
	for _, row := range rows {
		label := row.label + strings.Repeat(" ", labelWidth-lipgloss.Width(row.label))
		lines = append(lines,
			r.t.Label.Render(label)+" "+r.t.Income.Render(strings.Repeat("▇", scale(row.income)))+" "+format.Currency(row.income),
			strings.Repeat(" ", labelWidth)+" "+r.t.Expense.Render(strings.Repeat("▇", scale(row.expense)))+" "+format.Currency(row.expense),
		)
	}
	legend := r.t.Income.Render("▇ income") + "  " + r.t.Expense.Render("▇ expense")
	return strings.Join(lines, "\n") + "\n" + legend
}

// Analysis renders the analysis screen.
func (r *Renderer) Analysis(a *dashboard.Analysis) string {
	title := "Current Month Overview"
	cm := a.CurrentMonth()
	if cm != nil {
		title += fmt.Sprintf(" · %s %d", format.MonthShortName(cm.Month), cm.Year)
	}

	var parts []string
	if cm != nil {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			r.kpi("Income", format.Currency(cm.Income), r.t.Income),
			r.kpi("Expenses", format.Currency(cm.Expenses), r.t.Expense),
			r.kpi("Balance", format.Currency(cm.Balance), r.t.Value),
		))
	}
	parts = append(parts, r.section("Monthly", r.MonthlyChart(a.Monthly)))
	daily := r.DailyChart(a.Daily)
	if a.DailyErr != nil {
		daily = r.t.Muted.Render("Daily breakdown unavailable.")
	}
	parts = append(parts, r.section("Daily", daily))

	insight := r.t.Title.Render("AI Insights")
	if !a.UpdatedAt.IsZero() {
		note := "Last updated " + a.UpdatedAt.Local().Format(time.DateTime)
		if a.Cached {
			note += " (cached)"
			if a.Stale {
				note += ", refreshing"
			}
		}
		insight += "\n" + r.t.Label.Render(note)
	}
	content := ""
	if a.Insights != nil {
		content = a.Insights.AIInsights
	}
	insight += "\n" + r.Insight(content)
	parts = append(parts, insight)

	return r.t.Title.Render(title) + "\n\n" + strings.Join(parts, "\n\n")
}

// Insight renders AI insight markdown.
func (r *Renderer) Insight(content string) string {
	blocks := markdown.Parse(content)
	if len(blocks) == 0 {
		return r.t.Muted.Render(markdown.NoInsight)
	}

	bold := r.t.Value
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case markdown.Heading:
			lines = append(lines, r.t.Title.Render(b.Text))
		case markdown.Bold:
			lines = append(lines, bold.Render(b.Text))
		case markdown.Bullet:
			lines = append(lines, "  • "+b.Text)
		default:
			var sb strings.Builder
			for _, s := range b.Spans {
				if s.Bold {
					sb.WriteString(bold.Render(s.Text))
				} else {
					sb.WriteString(s.Text)
				}
			}
			lines = append(lines, sb.String())
		}
	}
	return strings.Join(lines, "\n")
}
