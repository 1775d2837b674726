package insight

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"spendwise/internal"
	"spendwise/internal/expense"
	"spendwise/internal/settings"
)

// Analyzer is the external AI collaborator.
type Analyzer interface {
	Analyze(ctx context.Context, expenses []*expense.Expense) (*Insight, error)
}

// ExpenseSource supplies the collection to analyze.
type ExpenseSource interface {
	List() []*expense.Expense
}

// SettingsSource gates the feature on the enableAI flag.
type SettingsSource interface {
	Get() settings.Settings
}

// Service runs at most one analysis request at a time. While a request is
// Pending, further requests are rejected; a Failed request may be retried.
// Results are transient and never persisted.
type Service struct {
	analyzer Analyzer
	expenses ExpenseSource
	settings SettingsSource
	timeout  time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	insight   *Insight
	updatedAt time.Time
}

func NewService(analyzer Analyzer, expenses ExpenseSource, settingsSource SettingsSource, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		expenses: expenses,
		settings: settingsSource,
		timeout:  timeout,
		state:    StateIdle,
		logger:   logger,
	}
}

// Status returns the current request state and last result.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:     s.state,
		Insight:   s.insight,
		UpdatedAt: s.updatedAt,
	}
}

// RequestAnalysis starts an analysis run. An empty collection resolves
// immediately without contacting the collaborator. Returns
// ErrAnalysisInFlight while a previous run is still Pending and
// ErrAIDisabled when the feature flag is off.
func (s *Service) RequestAnalysis(ctx context.Context) (Status, error) {
	if !s.settings.Get().EnableAI {
		return s.Status(), internal.ErrAIDisabled
	}

	records := s.expenses.List()

	s.mu.Lock()
	if s.state == StatePending {
		s.mu.Unlock()
		s.logger.Warn("analysis request rejected: already in flight")
		return s.Status(), internal.ErrAnalysisInFlight
	}

	if len(records) == 0 {
		// Nothing to analyze: empty result, no network call.
		s.state = StateIdle
		s.insight = nil
		s.updatedAt = time.Now()
		status := Status{State: s.state, UpdatedAt: s.updatedAt}
		s.mu.Unlock()
		s.logger.Info("analysis skipped: no expenses")
		return status, nil
	}

	s.state = StatePending
	s.insight = nil
	s.updatedAt = time.Now()
	status := Status{State: s.state, UpdatedAt: s.updatedAt}
	s.mu.Unlock()

	go s.run(records)

	return status, nil
}

// run performs the single in-flight request. The timeout bounds a hung
// collaborator; there is no automatic retry.
func (s *Service) run(records []*expense.Expense) {
	ctx, cancel := internal.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.analyzer.Analyze(ctx, records)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.updatedAt = time.Now()
	if err != nil {
		s.state = StateFailed
		s.insight = nil
		s.logger.Error("analysis failed", "error", err, "expenses", len(records))
		return
	}

	s.state = StateResolved
	s.insight = result
	s.logger.Info("analysis resolved",
		"expenses", len(records),
		"recommendations", len(result.Recommendations))
}
