// SPDX-License-Identifier: GPL-3.0-or-later

package webapp

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/pkg/promtext"
)

// Only the business route is instrumented: /metrics and /healthz do not
// count themselves, and unknown paths 404 at the mux.
func (s *Service) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.instrument("/", s.handleIndex))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promtext.Handler(s.mx.Registry()))

	return mux
}

func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := struct {
		Ok             bool    `json:"ok"`
		LatencySeconds float64 `json:"latency_seconds"`
	}{
		Ok: true,
	}
	resp.LatencySeconds = time.Since(start).Seconds()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.Warningf("writing response: %v", err)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// instrument wraps a business handler: wall-clock duration from entry to
// response-ready goes into the latency histogram, the request counter is
// labeled with the status actually written. Recording runs in a defer, so
// a handler that fails is still counted, and recording failures are logged
// without touching the client response.
func (s *Service) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			s.record(endpoint, r.Method, sw.status, time.Since(start))
		}()

		next(sw, r)
	}
}

func (s *Service) record(endpoint, method string, status int, elapsed time.Duration) {
	hist, err := s.mx.RequestLatency.GetWithLabelValues()
	if err == nil {
		err = hist.Observe(elapsed.Seconds())
	}
	if err != nil {
		s.Warningf("recording request latency: %v", err)
	}

	counter, err := s.mx.RequestCount.GetWithLabelValues(endpoint, method, strconv.Itoa(status))
	if err != nil {
		s.Warningf("recording request count: %v", err)
		return
	}
	counter.Inc()
}

// statusWriter remembers the status code written by the handler.
// Handlers that never call WriteHeader implicitly write 200.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
