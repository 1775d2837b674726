package rest_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"spendwise/internal/category"
	"spendwise/internal/core/events"
	"spendwise/internal/expense"
	"spendwise/internal/insight"
	"spendwise/internal/reports"
	"spendwise/internal/settings"
	"spendwise/internal/storage"
	"spendwise/internal/transport/rest"
)

type stubConnectivity struct {
	online bool
}

func (s *stubConnectivity) Online() bool {
	return s.online
}

type stubAnalyzer struct {
	result *insight.Insight
	err    error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, expenses []*expense.Expense) (*insight.Insight, error) {
	return s.result, s.err
}

var _ = Describe("Router Integration", func() {
	var (
		router       *chi.Mux
		sqlDB        *sql.DB
		connectivity *stubConnectivity
		expenseStore *expense.Service
		settingStore *settings.Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		gormDB, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(gormDB.AutoMigrate(&storage.Blob{})).To(Succeed())

		sqlDB, err = gormDB.DB()
		Expect(err).NotTo(HaveOccurred())

		blobs := storage.NewBlobStore(gormDB)
		bus := events.NewEventBus(slogger)

		expenseStore = expense.NewService(bus, slogger)
		settingStore = settings.NewService(bus, slogger)
		expense.NewPersister(blobs, expenseStore, slogger).Register(bus)
		settings.NewPersister(blobs, settingStore, slogger).Register(bus)

		analyzer := &stubAnalyzer{
			result: &insight.Insight{
				Analysis:        "Looks balanced.",
				Recommendations: []string{"Nothing to change."},
			},
		}
		insightService := insight.NewService(analyzer, expenseStore, settingStore, time.Second, slogger)

		connectivity = &stubConnectivity{online: true}

		router = chi.NewRouter()
		rest.RegisterAllRoutes(
			router,
			sqlDB,
			connectivity,
			expense.NewHandler(expenseStore),
			reports.NewHandler(expenseStore, settingStore),
			settings.NewHandler(settingStore),
			category.NewHandler(),
			insight.NewHandler(insightService),
			slogger,
		)
	})

	perform := func(method, target string, body []byte) *httptest.ResponseRecorder {
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, target, bytes.NewReader(body))
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should answer the liveness probe", func() {
		w := perform(http.MethodGet, "/api/v1/ping", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("OK"))
	})

	It("should report a healthy database and the connectivity flag", func() {
		w := perform(http.MethodGet, "/api/v1/health", nil)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Status).To(Equal(rest.HealthHealthy))
		Expect(response.Components).To(HaveKey("sqlite"))
		Expect(response.Components).To(HaveKey("connectivity"))
	})

	It("should stay healthy while offline", func() {
		connectivity.online = false

		w := perform(http.MethodGet, "/api/v1/health", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should expose the offline banner signal", func() {
		connectivity.online = false

		w := perform(http.MethodGet, "/api/v1/status", nil)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response map[string]bool
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response).To(HaveKeyWithValue("online", false))
	})

	It("should serve the category catalog", func() {
		w := perform(http.MethodGet, "/api/v1/categories", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Food & Drinks"))
	})

	It("should log, list and delete an expense end to end", func() {
		body, _ := json.Marshal(map[string]interface{}{
			"amount":   42.50,
			"category": "Food & Drinks",
			"date":     "2024-03-15",
		})

		created := perform(http.MethodPost, "/api/v1/expenses", body)
		Expect(created.Code).To(Equal(http.StatusCreated))

		var exp expense.Expense
		Expect(json.NewDecoder(created.Body).Decode(&exp)).To(Succeed())

		listed := perform(http.MethodGet, "/api/v1/expenses", nil)
		Expect(listed.Code).To(Equal(http.StatusOK))
		Expect(listed.Body.String()).To(ContainSubstring(exp.ID))

		deleted := perform(http.MethodDelete, "/api/v1/expenses/"+exp.ID, nil)
		Expect(deleted.Code).To(Equal(http.StatusNoContent))
		Expect(expenseStore.Count()).To(Equal(0))
	})

	It("should serve the monthly report", func() {
		body, _ := json.Marshal(map[string]interface{}{
			"amount":   42.50,
			"category": "Food & Drinks",
			"date":     "2024-03-15",
		})
		Expect(perform(http.MethodPost, "/api/v1/expenses", body).Code).To(Equal(http.StatusCreated))

		w := perform(http.MethodGet, "/api/v1/reports/monthly?month=2024-03", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			NoData     bool                    `json:"no_data"`
			Total      float64                 `json:"total"`
			DailyTrend []reports.DayTotal      `json:"daily_trend"`
			ByCategory []reports.CategoryTotal `json:"by_category"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.NoData).To(BeFalse())
		Expect(response.Total).To(Equal(42.50))
		Expect(response.DailyTrend).To(HaveLen(31))
		Expect(response.ByCategory).To(HaveLen(1))
	})

	It("should update settings over PATCH", func() {
		w := perform(http.MethodPatch, "/api/v1/settings", []byte(`{"theme":"dark"}`))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(settingStore.Get().Theme).To(Equal(settings.ThemeDark))
	})

	It("should refuse analysis when AI is disabled", func() {
		Expect(perform(http.MethodPatch, "/api/v1/settings", []byte(`{"enableAI":false}`)).Code).
			To(Equal(http.StatusOK))

		w := perform(http.MethodPost, "/api/v1/insights/analyze", nil)

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})
})
