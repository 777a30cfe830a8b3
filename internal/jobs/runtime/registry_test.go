package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/simsportal/sims-portal-backend/internal/platform/ctxutil"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
)

type namedHandler string

func (h namedHandler) Type() string           { return string(h) }
func (h namedHandler) Run(ctx *Context) error { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	if err := r.Register(namedHandler("")); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if err := r.Register(namedHandler("b")); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if err := r.Register(namedHandler("a")); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if err := r.Register(namedHandler("a")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if _, ok := r.Get("a"); !ok {
		t.Fatalf("expected a to be registered")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("unexpected handler for missing")
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v", names)
	}
}

func TestNewContext(t *testing.T) {
	at := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	jc := NewContext(context.Background(), logger.Nop(), "assign_badges", at)
	if jc.RunID == "" {
		t.Fatalf("expected run id")
	}
	td := ctxutil.GetTraceData(jc.Ctx)
	if td == nil || td.TraceID != jc.RunID {
		t.Fatalf("trace data = %+v, want trace id %s", td, jc.RunID)
	}
	if !jc.ScheduledFor.Equal(at) || jc.Job != "assign_badges" {
		t.Fatalf("unexpected context %+v", jc)
	}
}
