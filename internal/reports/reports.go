// Package reports derives summary views from the expense collection. All
// functions are pure: they never mutate their input and recompute from
// scratch on every call.
package reports

import (
	"time"

	"spendwise/internal/expense"
)

// CategoryTotal is one (category, total) pair of a monthly breakdown. The
// set carries no guaranteed ordering across categories.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DayTotal is one entry of a monthly daily trend.
type DayTotal struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

// sameDay compares calendar days only, ignoring time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// onOrAfterDay reports whether t's calendar day is on or after d's.
func onOrAfterDay(t, d time.Time) bool {
	ty, tm, td := t.Date()
	dy, dm, dd := d.Date()
	if ty != dy {
		return ty > dy
	}
	if tm != dm {
		return tm > dm
	}
	return td >= dd
}

// TodayTotal sums the amounts of records logged on now's calendar day.
func TodayTotal(expenses []*expense.Expense, now time.Time) float64 {
	var total float64
	for _, e := range expenses {
		if sameDay(e.Date, now) {
			total += e.Amount
		}
	}
	return total
}

// FilterRange returns the records whose date falls within [start, end]
// inclusive, comparing calendar days only and preserving collection order.
func FilterRange(expenses []*expense.Expense, start, end time.Time) []*expense.Expense {
	filtered := make([]*expense.Expense, 0)
	for _, e := range expenses {
		if onOrAfterDay(e.Date, start) && onOrAfterDay(end, e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// RangeTotal sums the amounts of the records FilterRange would select.
func RangeTotal(expenses []*expense.Expense, start, end time.Time) float64 {
	var total float64
	for _, e := range FilterRange(expenses, start, end) {
		total += e.Amount
	}
	return total
}

// ForMonth returns the records dated in the given month, preserving order.
func ForMonth(expenses []*expense.Expense, month Month) []*expense.Expense {
	filtered := make([]*expense.Expense, 0)
	for _, e := range expenses {
		y, m, _ := e.Date.Date()
		if y == month.Year && m == month.Month {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MonthlyTotal sums the amounts across all records in the month.
func MonthlyTotal(expenses []*expense.Expense, month Month) float64 {
	var total float64
	for _, e := range ForMonth(expenses, month) {
		total += e.Amount
	}
	return total
}

// CategoryBreakdown groups the month's records by category and sums amounts
// per group. Categories with no records do not appear.
func CategoryBreakdown(expenses []*expense.Expense, month Month) []CategoryTotal {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, e := range ForMonth(expenses, month) {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		breakdown = append(breakdown, CategoryTotal{Category: name, Total: totals[name]})
	}
	return breakdown
}

// DailyTrend produces one entry per calendar day of the month (1..Days),
// zero-initialized, with each record's amount added to its day. Days with
// no expenses stay at zero.
func DailyTrend(expenses []*expense.Expense, month Month) []DayTotal {
	trend := make([]DayTotal, month.Days())
	for i := range trend {
		trend[i] = DayTotal{Day: i + 1, Amount: 0}
	}

	for _, e := range ForMonth(expenses, month) {
		day := e.Date.Day()
		trend[day-1].Amount += e.Amount
	}
	return trend
}
