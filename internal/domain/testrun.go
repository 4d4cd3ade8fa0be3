package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the state of a TestRun. Pending and Running are transient;
// Completed, Failed, and TimedOut are terminal. TestRuns are append-only
// history: no transition ever leaves a terminal state.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeRunning   Outcome = "running"
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimedOut  Outcome = "timed-out"
)

// Terminal reports whether the outcome is final.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomeCompleted, OutcomeFailed, OutcomeTimedOut:
		return true
	}
	return false
}

// TestRun records one execution of a single test category against a target.
type TestRun struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Category    Category  `json:"category"`
	Tier        Tier      `json:"tier"`
	Outcome     Outcome   `json:"outcome"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`

	// RawOutputPath points at the captured stdout/stderr artifact, kept for
	// diagnosis when the outcome is not Completed.
	RawOutputPath string `json:"raw_output_path,omitempty"`
	Error         string `json:"error,omitempty"`
}

// NewTestRun creates a pending run for a category under a session.
func NewTestRun(sessionID string, category Category, tier Tier) TestRun {
	return TestRun{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Category:  category,
		Tier:      tier,
		Outcome:   OutcomePending,
	}
}

// Begin moves the run from Pending to Running.
func (r *TestRun) Begin(now time.Time) error {
	if r.Outcome != OutcomePending {
		return fmt.Errorf("cannot begin test run in state %q", r.Outcome)
	}
	r.Outcome = OutcomeRunning
	r.StartedAt = now
	return nil
}

// Finish moves the run from Running into a terminal outcome.
func (r *TestRun) Finish(outcome Outcome, now time.Time) error {
	if r.Outcome != OutcomeRunning {
		return fmt.Errorf("cannot finish test run in state %q", r.Outcome)
	}
	if !outcome.Terminal() {
		return fmt.Errorf("%q is not a terminal outcome", outcome)
	}
	r.Outcome = outcome
	r.CompletedAt = now
	return nil
}
