package connectivity

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"spendwise/internal"
)

// Monitor observes connectivity to the outside world so the presentation
// layer can show an offline banner. It is informational only: storage and
// aggregation keep working fully offline.
type Monitor struct {
	probeURL string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	logger   *slog.Logger

	mu     sync.RWMutex
	online bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewMonitor(cfg internal.ConnectivityConfig, logger *slog.Logger) *Monitor {
	return &Monitor{
		probeURL: cfg.ProbeURL,
		interval: cfg.ProbeInterval,
		timeout:  cfg.ProbeTimeout,
		client:   &http.Client{},
		logger:   logger,
		// assume online until the first probe says otherwise
		online: true,
	}
}

// Start probes immediately and then on every interval tick until Stop.
func (m *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		m.probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.probe(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// Online reports the result of the most recent probe.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		m.setOnline(false)
		return
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.setOnline(false)
		return
	}
	resp.Body.Close()

	// any HTTP response means the network is reachable
	m.setOnline(true)
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()

	if changed {
		m.logger.Info("connectivity changed", "online", online)
	}
}
