// Package shutdown coordinates graceful shutdown: HTTP servers are drained
// first, then cleanup hooks run in reverse registration order.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

type server struct {
	name string
	srv  *http.Server
}

// Manager tracks servers and cleanup hooks
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	hooks   []hook
	servers []server
}

// NewManager returns a Manager whose shutdown sequence is bounded by timeout
func NewManager(logger *zap.Logger, timeout time.Duration) *Manager {
	return &Manager{
		logger:  logger.With(zap.String("component", "shutdown")),
		timeout: timeout,
	}
}

// RegisterHook adds a cleanup hook. Hooks run last-registered first.
func (m *Manager) RegisterHook(name string, fn func(ctx context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Serve starts srv in the background and registers it for draining. It
// returns an error if the server fails during startup.
func (m *Manager) Serve(name string, srv *http.Server) error {
	m.mu.Lock()
	m.servers = append(m.servers, server{name: name, srv: srv})
	m.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		m.logger.Info("Starting server", zap.String("server", name), zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server %s failed: %w", name, err)
		}
	}()

	// Give the listener a moment to fail on startup (e.g. port already in use)
	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Wait blocks until SIGINT or SIGTERM arrives or ctx is cancelled, then shuts down.
func (m *Manager) Wait(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	m.logger.Info("Shutdown requested")
	m.Shutdown()
}

// Shutdown drains every registered server concurrently, then runs hooks in
// reverse order. Hooks not yet started when the timeout expires are skipped.
func (m *Manager) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.mu.Lock()
	servers := append([]server(nil), m.servers...)
	hooks := append([]hook(nil), m.hooks...)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s server) {
			defer wg.Done()
			if err := s.srv.Shutdown(ctx); err != nil {
				m.logger.Error("Server shutdown error", zap.String("server", s.name), zap.Error(err))
				return
			}
			m.logger.Info("Server shut down", zap.String("server", s.name))
		}(s)
	}
	wg.Wait()

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if ctx.Err() != nil {
			m.logger.Warn("Shutdown timeout reached, skipping remaining hooks",
				zap.String("skipped_hook", h.name),
				zap.Int("remaining", i+1),
			)
			return
		}

		start := time.Now()
		if err := h.fn(ctx); err != nil {
			m.logger.Error("Shutdown hook failed",
				zap.String("hook", h.name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			continue
		}
		m.logger.Debug("Shutdown hook completed", zap.String("hook", h.name), zap.Duration("duration", time.Since(start)))
	}

	m.logger.Info("Graceful shutdown complete")
}
