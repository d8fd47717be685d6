// Package registry holds named health checks and runs them on demand.
// Each run is stateless; no history is kept between invocations.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/healthprobe/internal/endpoint"
	"github.com/hamed0406/healthprobe/internal/probe"
)

// Severity tells the host how bad a failing check is.
type Severity int

const (
	SeverityDown Severity = iota
	SeverityDegraded
)

func (s Severity) String() string {
	if s == SeverityDegraded {
		return "degraded"
	}
	return "down"
}

// CheckFunc is one registered probe: the caller's context carries the
// external cancellation signal.
type CheckFunc func(ctx context.Context) probe.Verdict

type check struct {
	name     string
	tags     []string
	severity Severity
	timeout  time.Duration // 0 = no registration-level timeout
	run      CheckFunc
}

// Option configures one registration.
type Option func(*check)

// WithTags attaches free-form tags reported alongside the check.
func WithTags(tags ...string) Option {
	return func(c *check) { c.tags = append(c.tags, tags...) }
}

// WithSeverity sets how a failure of this check is classified.
// The default is SeverityDown.
func WithSeverity(s Severity) Option {
	return func(c *check) { c.severity = s }
}

// WithTimeout caps one run of this check, on top of whatever deadline the
// caller's context already carries.
func WithTimeout(d time.Duration) Option {
	return func(c *check) { c.timeout = d }
}

// Registry is a named, ordered collection of health checks.
type Registry struct {
	mu     sync.RWMutex
	checks []*check
	byName map[string]*check
	logger *zap.Logger
}

func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{byName: make(map[string]*check), logger: logger}
}

// Register adds a named check. Names must be unique.
func (r *Registry) Register(name string, fn CheckFunc, opts ...Option) error {
	if name == "" {
		return fmt.Errorf("registry: check name is required")
	}
	if fn == nil {
		return fmt.Errorf("registry: check %q has no function", name)
	}

	c := &check{name: name, run: fn}
	for _, opt := range opts {
		opt(c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("registry: check %q already registered", name)
	}
	r.byName[name] = c
	r.checks = append(r.checks, c)
	return nil
}

// RegisterEndpoints registers an endpoint check-set as one named probe.
// This is the mechanical bridge from the fluent configuration surface to
// the evaluation engine.
func (r *Registry) RegisterEndpoints(name string, set *endpoint.CheckSet, clients probe.ClientFactory, opts ...Option) error {
	ev := probe.NewEvaluator(r.logger.Named(name), clients)
	return r.Register(name, func(ctx context.Context) probe.Verdict {
		return ev.Evaluate(ctx, set)
	}, opts...)
}

// Info describes one registered check.
type Info struct {
	Name     string   `json:"name"`
	Tags     []string `json:"tags,omitempty"`
	Severity string   `json:"severity"`
}

// Checks lists registered checks in registration order.
func (r *Registry) Checks() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.checks))
	for _, c := range r.checks {
		tags := append([]string(nil), c.tags...)
		sort.Strings(tags)
		out = append(out, Info{Name: c.name, Tags: tags, Severity: c.severity.String()})
	}
	return out
}

// Result is the outcome of one check within a report.
type Result struct {
	Name      string        `json:"name"`
	Severity  string        `json:"severity"`
	Verdict   probe.Verdict `json:"verdict"`
	ElapsedMS float64       `json:"elapsed_ms"`
}

// Report aggregates one run of every registered check.
// Status is "healthy" when all checks passed, else the worst severity
// among the failures ("degraded" or "down"). Err combines the underlying
// causes of every failed check.
type Report struct {
	Status  string   `json:"status"`
	Results []Result `json:"checks"`
	Err     error    `json:"-"`
}

func (rep Report) Healthy() bool { return rep.Status == "healthy" }

// Run executes one named check.
func (r *Registry) Run(ctx context.Context, name string) (Result, error) {
	r.mu.RLock()
	c := r.byName[name]
	r.mu.RUnlock()
	if c == nil {
		return Result{}, fmt.Errorf("registry: no check named %q", name)
	}
	return r.runOne(ctx, c), nil
}

// RunAll executes every registered check concurrently and returns the
// aggregated report. Results keep registration order regardless of
// completion order.
func (r *Registry) RunAll(ctx context.Context) Report {
	r.mu.RLock()
	checks := append([]*check(nil), r.checks...)
	r.mu.RUnlock()

	results := make([]Result, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		i, c := i, c
		g.Go(func() error {
			results[i] = r.runOne(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	rep := Report{Status: "healthy", Results: results}
	down := false
	for _, res := range results {
		if res.Verdict.Healthy {
			continue
		}
		if res.Severity == SeverityDown.String() {
			down = true
		}
		rep.Err = multierr.Append(rep.Err, fmt.Errorf("%s: %s", res.Name, res.Verdict.Description))
	}
	if rep.Err != nil {
		rep.Status = SeverityDegraded.String()
		if down {
			rep.Status = SeverityDown.String()
		}
	}
	return rep
}

func (r *Registry) runOne(ctx context.Context, c *check) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	v := c.run(ctx)
	elapsed := time.Since(start)

	if !v.Healthy {
		r.logger.Warn("check_failed",
			zap.String("check", c.name),
			zap.String("severity", c.severity.String()),
			zap.String("description", v.Description),
			zap.Error(v.Cause),
		)
	}

	return Result{
		Name:      c.name,
		Severity:  c.severity.String(),
		Verdict:   v,
		ElapsedMS: elapsed.Seconds() * 1000,
	}
}
