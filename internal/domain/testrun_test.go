package domain

import (
	"testing"
	"time"
)

func TestTestRunLifecycle(t *testing.T) {
	run := NewTestRun("sess-1", PasswordBrute, TierQuick)
	if run.Outcome != OutcomePending {
		t.Fatalf("new run should be pending, got %q", run.Outcome)
	}
	if run.ID == "" {
		t.Fatal("run id must be set")
	}

	if err := run.Begin(time.Now()); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if run.Outcome != OutcomeRunning {
		t.Fatalf("expected running, got %q", run.Outcome)
	}

	if err := run.Finish(OutcomeCompleted, time.Now()); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if run.Outcome != OutcomeCompleted {
		t.Fatalf("expected completed, got %q", run.Outcome)
	}
}

func TestTestRunTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []Outcome{OutcomeCompleted, OutcomeFailed, OutcomeTimedOut} {
		run := NewTestRun("sess-1", SQLInjection, TierStandard)
		if err := run.Begin(time.Now()); err != nil {
			t.Fatal(err)
		}
		if err := run.Finish(terminal, time.Now()); err != nil {
			t.Fatal(err)
		}

		if err := run.Begin(time.Now()); err == nil {
			t.Errorf("Begin from %q should fail", terminal)
		}
		if err := run.Finish(OutcomeCompleted, time.Now()); err == nil {
			t.Errorf("Finish from %q should fail", terminal)
		}
		if run.Outcome != terminal {
			t.Errorf("terminal outcome mutated from %q to %q", terminal, run.Outcome)
		}
	}
}

func TestTestRunCannotFinishWithoutBegin(t *testing.T) {
	run := NewTestRun("sess-1", Enumeration, TierStandard)
	if err := run.Finish(OutcomeCompleted, time.Now()); err == nil {
		t.Fatal("finishing a pending run should fail")
	}
}

func TestTestRunRejectsNonTerminalFinish(t *testing.T) {
	run := NewTestRun("sess-1", Enumeration, TierStandard)
	if err := run.Begin(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := run.Finish(OutcomeRunning, time.Now()); err == nil {
		t.Fatal("running is not a terminal outcome")
	}
}
