package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/simsportal/sims-portal-backend/internal/jobs/runtime"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

const DefaultTimezone = "America/New_York"

// Scheduler fires registered jobs on RFC 5545 recurrence rules evaluated in
// a fixed location. Each job loops in its own goroutine; a failing or
// panicking run is logged and the loop waits for the next instant.
type Scheduler struct {
	log      *logger.Logger
	registry *runtime.Registry
	loc      *time.Location
	rules    map[string]*rrule.RRule
	observer JobObserver
	now      func() time.Time
	wg       sync.WaitGroup
}

// JobObserver receives the outcome of every run: "ok", "error" or "panic".
type JobObserver interface {
	ObserveJob(job, status string, dur time.Duration)
}

// LoadLocation resolves name, falling back to DefaultTimezone when empty.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseRule parses an RRULE (with or without the "RRULE:" prefix) in loc.
// Without an explicit DTSTART the rule starts at dtstart.
func ParseRule(raw string, loc *time.Location, dtstart time.Time) (*rrule.RRule, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "RRULE:")
	opt, err := rrule.StrToROptionInLocation(raw, loc)
	if err != nil {
		return nil, err
	}
	if opt.Dtstart.IsZero() {
		opt.Dtstart = dtstart.In(loc).Truncate(time.Second)
	}
	return rrule.NewRRule(*opt)
}

// New builds a scheduler for schedule (job name to rrule). Every scheduled
// job must be registered; registered jobs without a rule only run through
// RunOnce.
func New(log *logger.Logger, registry *runtime.Registry, loc *time.Location, schedule map[string]string) (*Scheduler, error) {
	if registry == nil {
		return nil, fmt.Errorf("scheduler: nil registry")
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		log:      log.With("component", "Scheduler"),
		registry: registry,
		loc:      loc,
		rules:    make(map[string]*rrule.RRule, len(schedule)),
		now:      time.Now,
	}
	start := s.now()
	for name, raw := range schedule {
		if _, ok := registry.Get(name); !ok {
			return nil, fmt.Errorf("scheduler: no handler registered for job=%s", name)
		}
		rule, err := ParseRule(raw, loc, start)
		if err != nil {
			return nil, fmt.Errorf("scheduler: invalid rrule for job=%s: %w", name, err)
		}
		s.rules[name] = rule
	}
	return s, nil
}

// Jobs lists the scheduled job names.
func (s *Scheduler) Jobs() []string {
	out := make([]string, 0, len(s.rules))
	for name := range s.rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Next reports the first instant strictly after t at which name fires.
// The zero time means the rule is exhausted or the job is unscheduled.
func (s *Scheduler) Next(name string, after time.Time) time.Time {
	rule, ok := s.rules[name]
	if !ok {
		return time.Time{}
	}
	return rule.After(after.In(s.loc), false)
}

// Start launches one loop per scheduled job. Loops exit when ctx is done;
// Wait blocks until they have.
func (s *Scheduler) Start(ctx context.Context) {
	for _, name := range s.Jobs() {
		name := name
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, name)
		}()
	}
	s.log.Info("scheduler started", "jobs", s.Jobs(), "timezone", s.loc.String())
}

func (s *Scheduler) Wait() { s.wg.Wait() }

func (s *Scheduler) SetObserver(o JobObserver) { s.observer = o }

func (s *Scheduler) loop(ctx context.Context, name string) {
	for {
		next := s.Next(name, s.now())
		if next.IsZero() {
			s.log.Info("schedule exhausted", "job", name)
			return
		}
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if err := s.run(ctx, name, next); err != nil {
			s.log.Error("scheduled job failed", "job", name, "scheduled_for", next, "error", err)
		}
	}
}

// RunOnce runs name immediately, outside its schedule.
func (s *Scheduler) RunOnce(ctx context.Context, name string) error {
	return s.run(ctx, name, s.now().In(s.loc))
}

func (s *Scheduler) run(ctx context.Context, name string, scheduledFor time.Time) (err error) {
	h, ok := s.registry.Get(name)
	if !ok {
		return &missingHandlerError{Job: name}
	}
	jc := runtime.NewContext(ctx, s.log, name, scheduledFor)
	started := time.Now()
	defer func() {
		status := "ok"
		if r := recover(); r != nil {
			jc.Log.Error("job handler panic", "panic", r)
			err = &panicError{Job: name, Val: r}
			status = "panic"
		} else if err != nil {
			status = "error"
		}
		elapsed := time.Since(started)
		if s.observer != nil {
			s.observer.ObserveJob(name, status, elapsed)
		}
		if err == nil {
			jc.Log.Info("job finished", "duration", elapsed.String())
		}
	}()
	return h.Run(jc)
}

type missingHandlerError struct{ Job string }

func (e *missingHandlerError) Error() string { return "no handler registered for job=" + e.Job }

type panicError struct {
	Job string
	Val any
}

func (e *panicError) Error() string { return fmt.Sprintf("job %s panicked: %v", e.Job, e.Val) }
