package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"genius-backend/internal/shared/telemetry"
)

const (
	checkOK          = "ok"
	checkUnavailable = "unavailable"
)

// Check pings one dependency and returns nil when it is reachable.
type Check func(ctx context.Context) error

// Report is the health payload. Check failures are logged, never echoed.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	mu      sync.RWMutex
	checks  map[string]Check
	timeout time.Duration
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{checks: make(map[string]Check), timeout: 2 * time.Second}
}

// Register adds a named dependency check.
func (s *Service) Register(name string, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

// Status runs every check with a short timeout.
func (s *Service) Status(ctx context.Context) Report {
	s.mu.RLock()
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	checks := make(map[string]Check, len(s.checks))
	for k, v := range s.checks {
		checks[k] = v
	}
	s.mu.RUnlock()
	sort.Strings(names)

	report := Report{OK: true}
	if len(names) == 0 {
		return report
	}
	report.Checks = make(map[string]string, len(names))
	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := checks[name](cctx)
		cancel()
		if err != nil {
			telemetry.Warn("health.check_failed", map[string]any{"check": name, "error": err})
			report.OK = false
			report.Checks[name] = checkUnavailable
			continue
		}
		report.Checks[name] = checkOK
	}
	return report
}
