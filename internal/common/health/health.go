// Package health provides liveness, readiness and detailed health probes
// backed by pluggable dependency checkers.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusUp       = "up"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

// HealthStatus represents the overall health of the service
type HealthStatus struct {
	Status       string                     `json:"status"` // healthy, degraded, unhealthy
	Version      string                     `json:"version,omitempty"`
	Uptime       string                     `json:"uptime"`
	Dependencies map[string]DependencyCheck `json:"dependencies"`
	CheckedAt    time.Time                  `json:"checked_at"`
}

// DependencyCheck is the result of a single checker
type DependencyCheck struct {
	Status    string    `json:"status"`
	Latency   string    `json:"latency"`
	Details   string    `json:"details,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// HealthChecker is implemented by every dependency probe
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) DependencyCheck
}

// HealthService aggregates registered checkers
type HealthService struct {
	checkers  []HealthChecker
	logger    *zap.Logger
	startTime time.Time
	version   string
	timeout   time.Duration
	mu        sync.RWMutex
}

// NewHealthService creates a new HealthService
func NewHealthService(logger *zap.Logger) *HealthService {
	return &HealthService{
		logger:    logger.With(zap.String("component", "health")),
		startTime: time.Now(),
		timeout:   5 * time.Second,
	}
}

// SetVersion sets the version reported in health responses
func (h *HealthService) SetVersion(version string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.version = version
}

// RegisterCheck adds a checker
func (h *HealthService) RegisterCheck(checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
	h.logger.Info("Registered health checker", zap.String("name", checker.Name()))
}

// Check runs every checker concurrently and folds the results into one status.
// Any down dependency makes the service unhealthy; any degraded one makes it degraded.
func (h *HealthService) Check(ctx context.Context) *HealthStatus {
	h.mu.RLock()
	checkers := append([]HealthChecker(nil), h.checkers...)
	version := h.version
	h.mu.RUnlock()

	type result struct {
		name  string
		check DependencyCheck
	}
	results := make(chan result, len(checkers))

	for _, checker := range checkers {
		go func(c HealthChecker) {
			checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()
			results <- result{name: c.Name(), check: c.Check(checkCtx)}
		}(checker)
	}

	dependencies := make(map[string]DependencyCheck, len(checkers))
	for range checkers {
		r := <-results
		dependencies[r.name] = r.check
	}

	overall := "healthy"
	for name, dep := range dependencies {
		switch dep.Status {
		case StatusDown:
			overall = "unhealthy"
			h.logger.Warn("Dependency is down", zap.String("dependency", name), zap.String("details", dep.Details))
		case StatusDegraded:
			if overall != "unhealthy" {
				overall = "degraded"
			}
			h.logger.Warn("Dependency is degraded", zap.String("dependency", name))
		}
	}

	return &HealthStatus{
		Status:       overall,
		Version:      version,
		Uptime:       formatDuration(time.Since(h.startTime)),
		Dependencies: dependencies,
		CheckedAt:    time.Now(),
	}
}

// Handler serves the detailed health report: 200 unless unhealthy.
func (h *HealthService) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := h.Check(c.Request.Context())

		code := http.StatusOK
		if status.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

// ReadyHandler answers readiness probes: 503 while any dependency is down.
func (h *HealthService) ReadyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := h.Check(c.Request.Context())

		for _, dep := range status.Dependencies {
			if dep.Status == StatusDown {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "not ready",
					"reason":  "one or more dependencies are down",
					"details": status.Dependencies,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// LiveHandler answers liveness probes
func (h *HealthService) LiveHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "alive",
			"uptime": formatDuration(time.Since(h.startTime)),
		})
	}
}

// RegisterStandardRoutes mounts /health, /health/live and /health/ready
func (h *HealthService) RegisterStandardRoutes(router gin.IRoutes) {
	router.GET("/health", h.Handler())
	router.GET("/health/live", h.LiveHandler())
	router.GET("/health/ready", h.ReadyHandler())
}

// TableSizer is satisfied by anything that can report how many mappings it holds
type TableSizer interface {
	Len() int
}

// MappingTableChecker reports down when the loaded mapping table is empty,
// since every translation would then yield an empty result.
type MappingTableChecker struct {
	table TableSizer
}

// NewMappingTableChecker creates a checker over table
func NewMappingTableChecker(table TableSizer) *MappingTableChecker {
	return &MappingTableChecker{table: table}
}

// Name returns the checker name
func (m *MappingTableChecker) Name() string {
	return "mapping_table"
}

// Check inspects the table size
func (m *MappingTableChecker) Check(ctx context.Context) DependencyCheck {
	start := time.Now()

	if m.table == nil {
		return DependencyCheck{
			Status:    StatusDown,
			Latency:   time.Since(start).String(),
			Details:   "mapping table not loaded",
			CheckedAt: time.Now(),
		}
	}

	n := m.table.Len()
	status := StatusUp
	details := fmt.Sprintf("%d entries", n)
	if n == 0 {
		status = StatusDown
		details = "mapping table is empty"
	}

	return DependencyCheck{
		Status:    status,
		Latency:   time.Since(start).String(),
		Details:   details,
		CheckedAt: time.Now(),
	}
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
