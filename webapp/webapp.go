// SPDX-License-Identifier: GPL-3.0-or-later

// Package webapp implements the instrumented demo web service: a JSON
// business route, a liveness route and the registry exposition on /metrics.
package webapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/logger"
)

const (
	defaultListenAddr = ":8000"

	readTimeout       = time.Second * 10
	readHeaderTimeout = time.Second * 5
	writeTimeout      = time.Second * 10
	idleTimeout       = time.Second * 60
	shutdownTimeout   = time.Second * 10
)

type Config struct {
	ListenAddr string
}

func New(cfg Config) *Service {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	return &Service{
		Logger: logger.New().With(
			slog.String("component", "webapp"),
		),
		addr: cfg.ListenAddr,
		mx:   NewMetrics(),
	}
}

type Service struct {
	*logger.Logger

	addr string
	mx   *Metrics
}

// Metrics returns the service registry, /metrics serves its exposition.
func (s *Service) Metrics() *Metrics {
	return s.mx
}

// Run serves until ctx is canceled, then drains in-flight requests within
// shutdownTimeout and closes the listener if draining fails.
func (s *Service) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.Infof("listening on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.Info("shutdown initiated")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.Errorf("graceful shutdown failed: %v", err)
		_ = srv.Close()
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.Info("server stopped")
	return nil
}
