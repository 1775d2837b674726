package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spendwise/internal/expense"
	"spendwise/internal/settings"
)

type stubExpenseSource struct {
	expenses []*expense.Expense
}

func (s *stubExpenseSource) List() []*expense.Expense {
	return s.expenses
}

type stubSettingsSource struct {
	current settings.Settings
}

func (s *stubSettingsSource) Get() settings.Settings {
	return s.current
}

func onDay(date string, amount float64, cat string) *expense.Expense {
	parsed, err := time.Parse("2006-01-02", date)
	Expect(err).ToNot(HaveOccurred())
	return &expense.Expense{ID: date + "/" + cat, Amount: amount, Category: cat, Date: parsed}
}

var _ = Describe("Reports Handler", func() {
	var (
		source  *stubExpenseSource
		handler *Handler
	)

	BeforeEach(func() {
		source = &stubExpenseSource{}
		handler = NewHandler(source, &stubSettingsSource{current: settings.Defaults()})
		handler.now = func() time.Time {
			return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
		}
	})

	Describe("GetToday", func() {
		It("should report today's records and total", func() {
			source.expenses = []*expense.Expense{
				onDay("2024-03-15", 42.50, "Food & Drinks"),
				onDay("2024-03-14", 10, "Other"),
			}

			req := httptest.NewRequest(http.MethodGet, "/reports/today", nil)
			w := httptest.NewRecorder()
			handler.GetToday(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Date           string             `json:"date"`
				Expenses       []*expense.Expense `json:"expenses"`
				Total          float64            `json:"total"`
				FormattedTotal string             `json:"formatted_total"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Date).To(Equal("2024-03-15"))
			Expect(response.Expenses).To(HaveLen(1))
			Expect(response.Total).To(Equal(42.50))
			Expect(response.FormattedTotal).To(Equal("$42.50"))
		})
	})

	Describe("GetRange", func() {
		It("should return the inclusive range with its total", func() {
			source.expenses = []*expense.Expense{
				onDay("2024-03-10", 10, "Other"),
				onDay("2024-03-15", 20, "Other"),
				onDay("2024-03-21", 99, "Other"),
			}

			req := httptest.NewRequest(http.MethodGet, "/reports/range?start=2024-03-10&end=2024-03-20", nil)
			w := httptest.NewRecorder()
			handler.GetRange(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Expenses []*expense.Expense `json:"expenses"`
				Total    float64            `json:"total"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Expenses).To(HaveLen(2))
			Expect(response.Total).To(Equal(30.0))
		})

		It("should return 400 when start is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/range?end=2024-03-20", nil)
			w := httptest.NewRecorder()
			handler.GetRange(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a malformed end date", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/range?start=2024-03-10&end=20-03-2024", nil)
			w := httptest.NewRecorder()
			handler.GetRange(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GetMonthly", func() {
		It("should return breakdown and trend for a month with records", func() {
			source.expenses = []*expense.Expense{
				onDay("2024-03-15", 42.50, "Food & Drinks"),
			}

			req := httptest.NewRequest(http.MethodGet, "/reports/monthly?month=2024-03", nil)
			w := httptest.NewRecorder()
			handler.GetMonthly(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Month          string          `json:"month"`
				NoData         bool            `json:"no_data"`
				Total          float64         `json:"total"`
				FormattedTotal string          `json:"formatted_total"`
				ByCategory     []CategoryTotal `json:"by_category"`
				DailyTrend     []DayTotal      `json:"daily_trend"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Month).To(Equal("2024-03"))
			Expect(response.NoData).To(BeFalse())
			Expect(response.Total).To(Equal(42.50))
			Expect(response.FormattedTotal).To(Equal("$42.50"))
			Expect(response.ByCategory).To(ConsistOf(CategoryTotal{Category: "Food & Drinks", Total: 42.50}))
			Expect(response.DailyTrend).To(HaveLen(31))
			Expect(response.DailyTrend[14].Amount).To(Equal(42.50))
		})

		It("should flag an empty month as no_data", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/monthly?month=2024-06", nil)
			w := httptest.NewRecorder()
			handler.GetMonthly(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response["no_data"]).To(BeTrue())
			Expect(response).ToNot(HaveKey("by_category"))
		})

		It("should default to the current month when none is given", func() {
			source.expenses = []*expense.Expense{
				onDay("2024-03-01", 5, "Other"),
			}

			req := httptest.NewRequest(http.MethodGet, "/reports/monthly", nil)
			w := httptest.NewRecorder()
			handler.GetMonthly(w, req)

			var response map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response["month"]).To(Equal("2024-03"))
			Expect(response["no_data"]).To(BeFalse())
		})

		It("should return 400 for a malformed month", func() {
			req := httptest.NewRequest(http.MethodGet, "/reports/monthly?month=March", nil)
			w := httptest.NewRecorder()
			handler.GetMonthly(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
