package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// checkTimeout bounds a single health probe.
const checkTimeout = 5 * time.Second

// HealthMonitor periodically pings the pool and logs failures. It
// satisfies the server lifecycle Service contract: Start blocks until
// Stop is called.
type HealthMonitor struct {
	pool     *Pool
	logger   *zap.Logger
	interval time.Duration
	quit     chan struct{}
}

// NewHealthMonitor creates a monitor that probes the pool every interval.
//
// Precondition: logger must be non-nil; interval must be > 0. The pool is
// only touched when a tick fires.
func NewHealthMonitor(pool *Pool, logger *zap.Logger, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{
		pool:     pool,
		logger:   logger,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

// Start runs the probe loop until Stop is called.
//
// Postcondition: returns nil once Stop has been observed.
func (m *HealthMonitor) Start() error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return nil
		case <-ticker.C:
			if err := m.pool.Health(context.Background(), checkTimeout); err != nil {
				m.logger.Warn("database health check failed", zap.Error(err))
			}
		}
	}
}

// Stop ends the probe loop.
//
// Precondition: Stop must be called at most once.
func (m *HealthMonitor) Stop() {
	close(m.quit)
}
