package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// NamedCheckFunc wraps a check function with a name
type NamedCheckFunc struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &NamedCheckFunc{name: name, fn: fn}
}

// Name returns the checker name
func (c *NamedCheckFunc) Name() string {
	return c.name
}

// Check runs the check
func (c *NamedCheckFunc) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// Registry runs a set of checkers concurrently
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	tool     string
	version  string
}

// NewRegistry creates a new check registry
func NewRegistry(tool, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		tool:     tool,
		version:  version,
	}
}

// Register adds a checker to the registry, replacing one of the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Unregister removes a checker from the registry
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// Check runs all checks and returns the overall status. Results are
// ordered by check name.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := &Report{
		Tool:      r.tool,
		Version:   r.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(r.checkers)),
	}

	var wg sync.WaitGroup
	results := make(chan CheckResult, len(r.checkers))

	for _, checker := range r.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			result.Timestamp = time.Now()
			if result.Name == "" {
				result.Name = c.Name()
			}
			results <- result
		}(checker)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	overallStatus := StatusHealthy
	for result := range results {
		report.Checks = append(report.Checks, result)
		switch result.Status {
		case StatusUnhealthy:
			overallStatus = StatusUnhealthy
		case StatusDegraded:
			if overallStatus != StatusUnhealthy {
				overallStatus = StatusDegraded
			}
		}
	}
	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Name < report.Checks[j].Name
	})

	report.Status = overallStatus
	return report
}

// CheckWithTimeout runs all checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report represents the overall check report
type Report struct {
	Tool      string        `json:"tool"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("%s %s: %s, %d checks", r.Tool, r.Version, r.Status, len(r.Checks))
}

// Healthy reports whether no check failed
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// Common checks

// DirWritableCheck verifies that a file can be created in dir, creating
// the directory when missing
func DirWritableCheck(name, dir string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		details := map[string]interface{}{"dir": dir}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error(), Details: details}
		}
		f, err := os.CreateTemp(dir, ".probe-*")
		if err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error(), Details: details}
		}
		f.Close()
		os.Remove(f.Name())
		return CheckResult{Status: StatusHealthy, Message: "writable", Details: details}
	})
}

// FileCheck verifies that path exists and is a regular file. A missing
// optional file is reported as degraded.
func FileCheck(name, path string, optional bool) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		details := map[string]interface{}{"path": filepath.Clean(path)}
		info, err := os.Stat(path)
		switch {
		case err == nil && info.Mode().IsRegular():
			return CheckResult{Status: StatusHealthy, Message: "present", Details: details}
		case err == nil:
			return CheckResult{Status: StatusUnhealthy, Message: "not a regular file", Details: details}
		case os.IsNotExist(err) && optional:
			return CheckResult{Status: StatusDegraded, Message: "not present", Details: details}
		default:
			return CheckResult{Status: StatusUnhealthy, Message: err.Error(), Details: details}
		}
	})
}
