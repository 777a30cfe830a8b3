package envutil

import (
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	t.Setenv("SIMS_TEST_INT", "42")
	if got := Int("SIMS_TEST_INT", 7); got != 42 {
		t.Fatalf("Int: expected 42, got %d", got)
	}
	t.Setenv("SIMS_TEST_INT", "nope")
	if got := Int("SIMS_TEST_INT", 7); got != 7 {
		t.Fatalf("Int (bad value): expected default 7, got %d", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("SIMS_TEST_DUR", "90s")
	if got := Duration("SIMS_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration: expected 90s, got %s", got)
	}
	t.Setenv("SIMS_TEST_DUR", "15")
	if got := Duration("SIMS_TEST_DUR", time.Second); got != 15*time.Second {
		t.Fatalf("Duration (seconds): expected 15s, got %s", got)
	}
}

func TestBoolAndList(t *testing.T) {
	t.Setenv("SIMS_TEST_BOOL", "off")
	if Bool("SIMS_TEST_BOOL", true) {
		t.Fatalf("Bool: expected false")
	}
	t.Setenv("SIMS_TEST_LIST", " a, ,b ")
	got := List("SIMS_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: unexpected result %v", got)
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("SIMS_TEST_FLOAT", "0.25")
	if got := Float("SIMS_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float = %v", got)
	}
	t.Setenv("SIMS_TEST_FLOAT", "lots")
	if got := Float("SIMS_TEST_FLOAT", 1); got != 1 {
		t.Fatalf("Float on garbage = %v, want default", got)
	}
}
