package reports

import (
	"net/http"
	"time"

	"spendwise/internal"
	"spendwise/internal/expense"
	"spendwise/internal/settings"
	"spendwise/internal/transport"
)

// ExpenseSource supplies the collection snapshot to aggregate over.
type ExpenseSource interface {
	List() []*expense.Expense
}

// SettingsSource supplies display settings for formatted totals.
type SettingsSource interface {
	Get() settings.Settings
}

type Handler struct {
	*transport.BaseHandler
	Expenses ExpenseSource
	Settings SettingsSource

	// now is swappable for tests.
	now func() time.Time
}

func NewHandler(expenses ExpenseSource, settingsSource SettingsSource) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Expenses:    expenses,
		Settings:    settingsSource,
		now:         time.Now,
	}
}

// GetToday returns today's records and total.
func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	all := h.Expenses.List()

	todays := FilterRange(all, now, now)
	total := TodayTotal(all, now)

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":            now.Format("2006-01-02"),
		"expenses":        todays,
		"total":           total,
		"formatted_total": h.Settings.Get().FormatCurrency(total),
	})
}

// GetRange returns the records within an inclusive calendar-date range
// together with the range total.
func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		h.HandleServiceError(w, internal.NewValidationFieldError("start", "start must be YYYY-MM-DD", internal.ErrCodeInvalidDate))
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		h.HandleServiceError(w, internal.NewValidationFieldError("end", "end must be YYYY-MM-DD", internal.ErrCodeInvalidDate))
		return
	}

	all := h.Expenses.List()
	filtered := FilterRange(all, start, end)

	var total float64
	for _, e := range filtered {
		total += e.Amount
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"start":           start.Format("2006-01-02"),
		"end":             end.Format("2006-01-02"),
		"expenses":        filtered,
		"total":           total,
		"formatted_total": h.Settings.Get().FormatCurrency(total),
	})
}

// GetMonthly returns the month's total, category breakdown and daily trend.
// A month with no matching records is reported as no_data, not an error.
func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		monthParam = MonthOf(h.now()).String()
	}

	month, err := ParseMonth(monthParam)
	if err != nil {
		h.Logger.Error("GetMonthly: invalid month", "month", monthParam)
		h.HandleServiceError(w, err)
		return
	}

	all := h.Expenses.List()
	monthly := ForMonth(all, month)

	if len(monthly) == 0 {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"month":   month.String(),
			"no_data": true,
		})
		return
	}

	total := MonthlyTotal(all, month)

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"month":           month.String(),
		"no_data":         false,
		"total":           total,
		"formatted_total": h.Settings.Get().FormatCurrency(total),
		"by_category":     CategoryBreakdown(all, month),
		"daily_trend":     DailyTrend(all, month),
	})
}
