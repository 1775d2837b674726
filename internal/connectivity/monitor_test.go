package connectivity_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spendwise/internal"
	"spendwise/internal/connectivity"
)

var _ = Describe("Connectivity Monitor", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	newMonitor := func(probeURL string) *connectivity.Monitor {
		return connectivity.NewMonitor(internal.ConnectivityConfig{
			ProbeURL:      probeURL,
			ProbeInterval: time.Hour,
			ProbeTimeout:  time.Second,
		}, logger)
	}

	It("should assume online before the first probe", func() {
		monitor := newMonitor("http://127.0.0.1:0")

		Expect(monitor.Online()).To(BeTrue())
	})

	It("should stay online when the probe target responds", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		monitor := newMonitor(server.URL)
		monitor.Start(context.Background())
		defer monitor.Stop()

		Consistently(monitor.Online, 200*time.Millisecond).Should(BeTrue())
	})

	It("should treat any HTTP response as online, even an error status", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		monitor := newMonitor(server.URL)
		monitor.Start(context.Background())
		defer monitor.Stop()

		Consistently(monitor.Online, 200*time.Millisecond).Should(BeTrue())
	})

	It("should go offline when the probe target is unreachable", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		monitor := newMonitor(url)
		monitor.Start(context.Background())
		defer monitor.Stop()

		Eventually(monitor.Online).Should(BeFalse())
	})

	It("should stop the probe loop cleanly", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		monitor := newMonitor(server.URL)
		monitor.Start(context.Background())

		done := make(chan struct{})
		go func() {
			monitor.Stop()
			close(done)
		}()

		Eventually(done).Should(BeClosed())
	})

	It("should tolerate Stop without Start", func() {
		monitor := newMonitor("http://127.0.0.1:0")

		Expect(monitor.Stop).ToNot(Panic())
	})
})
