package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/jobs/runtime"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type funcHandler struct {
	name string
	run  func(jc *runtime.Context) error
}

func (h funcHandler) Type() string                  { return h.name }
func (h funcHandler) Run(jc *runtime.Context) error { return h.run(jc) }

func registry(t *testing.T, handlers ...funcHandler) *runtime.Registry {
	t.Helper()
	reg := runtime.NewRegistry()
	for _, h := range handlers {
		require.NoError(t, reg.Register(h))
	}
	return reg
}

func noop(name string) funcHandler {
	return funcHandler{name: name, run: func(*runtime.Context) error { return nil }}
}

func TestNext_EvaluatesInLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, loc.String())

	reg := registry(t, noop("surge"), noop("badges"), noop("stats"))
	s, err := New(logger.Nop(), reg, loc, map[string]string{
		"surge":  "FREQ=DAILY;BYHOUR=1,4,7,10,13,16;BYMINUTE=0;BYSECOND=0",
		"badges": "RRULE:FREQ=DAILY;BYHOUR=17;BYMINUTE=0;BYSECOND=0",
		"stats":  "FREQ=HOURLY;BYMINUTE=30;BYSECOND=0",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"badges", "stats", "surge"}, s.Jobs())

	d := time.Now().In(loc).AddDate(0, 0, 2)
	after := time.Date(d.Year(), d.Month(), d.Day(), 12, 30, 0, 0, loc)

	next := s.Next("surge", after).In(loc)
	assert.Equal(t, time.Date(d.Year(), d.Month(), d.Day(), 13, 0, 0, 0, loc), next)
	next = s.Next("badges", after).In(loc)
	assert.Equal(t, time.Date(d.Year(), d.Month(), d.Day(), 17, 0, 0, 0, loc), next)
	next = s.Next("stats", after)
	assert.True(t, next.Equal(time.Date(d.Year(), d.Month(), d.Day(), 13, 30, 0, 0, loc)), "got %s", next)

	assert.True(t, s.Next("unscheduled", after).IsZero())
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(logger.Nop(), nil, time.UTC, nil)
	assert.Error(t, err)

	_, err = New(logger.Nop(), registry(t), time.UTC, map[string]string{"ghost": "FREQ=DAILY"})
	assert.ErrorContains(t, err, "no handler")

	_, err = New(logger.Nop(), registry(t, noop("a")), time.UTC, map[string]string{"a": "FREQ=SOMETIMES"})
	assert.ErrorContains(t, err, "invalid rrule")

	_, err = LoadLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	var got *runtime.Context
	reg := registry(t,
		funcHandler{name: "ok", run: func(jc *runtime.Context) error { got = jc; return nil }},
		funcHandler{name: "fails", run: func(*runtime.Context) error { return errors.New("nope") }},
		funcHandler{name: "panics", run: func(*runtime.Context) error { panic("kaboom") }},
	)
	s, err := New(logger.Nop(), reg, time.UTC, nil)
	require.NoError(t, err)
	obs := &recordingObserver{}
	s.SetObserver(obs)
	ctx := context.Background()

	require.NoError(t, s.RunOnce(ctx, "ok"))
	require.NotNil(t, got)
	assert.Equal(t, "ok", got.Job)
	assert.NotEmpty(t, got.RunID)

	assert.EqualError(t, s.RunOnce(ctx, "fails"), "nope")

	err = s.RunOnce(ctx, "panics")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "kaboom"))

	assert.ErrorContains(t, s.RunOnce(ctx, "missing"), "no handler registered")
	assert.Equal(t, []string{"ok:ok", "fails:error", "panics:panic"}, obs.seen)
}

type recordingObserver struct{ seen []string }

func (o *recordingObserver) ObserveJob(job, status string, dur time.Duration) {
	o.seen = append(o.seen, job+":"+status)
}

func TestStart_KeepsRunningAfterPanics(t *testing.T) {
	var panics, runs atomic.Int32
	reg := registry(t,
		funcHandler{name: "flaky", run: func(*runtime.Context) error {
			panics.Add(1)
			panic("again")
		}},
		funcHandler{name: "steady", run: func(*runtime.Context) error {
			runs.Add(1)
			return nil
		}},
	)
	s, err := New(logger.Nop(), reg, time.UTC, map[string]string{
		"flaky":  "FREQ=SECONDLY",
		"steady": "FREQ=SECONDLY",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool {
		return panics.Load() >= 2 && runs.Load() >= 2
	}, 6*time.Second, 50*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler loops did not stop after cancel")
	}
}
