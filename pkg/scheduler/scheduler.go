package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerFault wraps a panic recovered from a unit of work.
var ErrWorkerFault = errors.New("scheduler: worker fault")

// Policy selects how units are executed. It is fixed for the life of a Scheduler.
type Policy int

const (
	// Sequential runs units in order on the caller's goroutine and stops at
	// the first failure.
	Sequential Policy = iota
	// Concurrent runs every unit on its own goroutine, waits for all of them,
	// and then reports every failure together.
	Concurrent
)

func (p Policy) String() string {
	switch p {
	case Sequential:
		return "sequential"
	case Concurrent:
		return "concurrent"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps "sequential" or "concurrent" (any case) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return Sequential, nil
	case "concurrent":
		return Concurrent, nil
	default:
		return Sequential, fmt.Errorf("unknown scheduling policy %q", s)
	}
}

// Unit is one independent piece of work.
type Unit struct {
	Name string
	Do   func() error
}

// Scheduler executes units according to its policy.
type Scheduler struct {
	policy  Policy
	workers int
	log     *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWorkers caps the number of units running at once under the Concurrent
// policy. n <= 0 leaves the pool unbounded.
func WithWorkers(n int) Option {
	return func(s *Scheduler) { s.workers = n }
}

// WithLogger sets the logger used for per-unit failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a scheduler for the given policy.
func New(p Policy, opts ...Option) *Scheduler {
	s := &Scheduler{policy: p, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Policy reports the scheduler's policy.
func (s *Scheduler) Policy() Policy { return s.policy }

// Run executes units and blocks until they are done. Each returned failure is
// prefixed with the unit's name.
func (s *Scheduler) Run(units []Unit) error {
	if s.policy == Concurrent {
		return s.runConcurrent(units)
	}
	return s.runSequential(units)
}

func (s *Scheduler) runSequential(units []Unit) error {
	for i, u := range units {
		if err := s.attempt(u); err != nil {
			if skipped := len(units) - i - 1; skipped > 0 {
				s.log.Warn("aborting remaining units", "failed", u.Name, "skipped", skipped)
			}
			return err
		}
	}
	return nil
}

func (s *Scheduler) runConcurrent(units []Unit) error {
	var g errgroup.Group
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}

	// Each unit records its own failure and reports success to the group so
	// that no sibling is cut short.
	errs := make([]error, len(units))
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			errs[i] = s.attempt(u)
			return nil
		})
	}
	// Units never return an error to the group; failures live in errs.
	_ = g.Wait()
	return errors.Join(errs...)
}

func (s *Scheduler) attempt(u Unit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %w: %v", u.Name, ErrWorkerFault, r)
			s.log.Error("unit panicked", "unit", u.Name, "panic", r)
		}
	}()
	if err := u.Do(); err != nil {
		s.log.Error("unit failed", "unit", u.Name, "err", err)
		return fmt.Errorf("%s: %w", u.Name, err)
	}
	return nil
}
