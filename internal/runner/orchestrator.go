// Package runner sequences test categories against a configured target. The
// orchestrator runs categories strictly sequentially with a fixed gap between
// them: the point of the exercise is validating per-category detection rules,
// and an aggregate burst of concurrent probes could trip unrelated
// rate-limiting on the target. Concurrent or zero-gap execution is a
// deliberate non-feature.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bytemomo/moray/internal/domain"
	"bytemomo/moray/internal/probe"
	"bytemomo/moray/internal/wordlist"

	"github.com/sirupsen/logrus"
)

// ProbeInvoker dispatches one external probe invocation.
type ProbeInvoker interface {
	CheckDependencies(categories []domain.Category) error
	Run(ctx context.Context, req probe.Request) (probe.RawOutput, error)
}

// WordlistProvider materializes the credential lists brute categories need.
type WordlistProvider interface {
	EnsurePair(size domain.SizeClass) (users, passwords wordlist.Wordlist, err error)
}

// ArtifactSink persists one finished TestRun and its raw output.
type ArtifactSink interface {
	Save(run *domain.TestRun, raw []byte) (string, error)
}

// Orchestrator drives TestRuns through their lifecycle and records every
// outcome. TestRuns are append-only history: once terminal they are never
// touched again.
type Orchestrator struct {
	Log       *logrus.Entry
	Invoker   ProbeInvoker
	Wordlists WordlistProvider
	Store     ArtifactSink

	// InterTestGap separates categories in a run-all sweep.
	InterTestGap time.Duration

	// OnProgress, when set, is called after each category of a run-all
	// finishes. Presentation-layer hook; the orchestrator has no terminal
	// output of its own.
	OnProgress func(done, total int, run domain.TestRun)
}

// RunAll executes the given categories in their declared order. The external
// dependencies are checked once up front; a missing binary aborts before any
// TestRun is created. After that, a single category's failure is recorded in
// its TestRun and the sweep continues.
func (o *Orchestrator) RunAll(ctx context.Context, session *domain.Session, categories []domain.Category, tier domain.Tier, params domain.TierParams) ([]domain.TestRun, error) {
	if err := o.Invoker.CheckDependencies(categories); err != nil {
		return nil, err
	}

	o.Log.WithFields(logrus.Fields{
		"session":    session.ID,
		"target":     session.Target.String(),
		"categories": len(categories),
		"tier":       tier,
	}).Info("Starting test sequence")

	var runs []domain.TestRun
	for i, category := range categories {
		if i > 0 {
			if err := o.waitGap(ctx); err != nil {
				return runs, err
			}
		}
		if ctx.Err() != nil {
			return runs, ctx.Err()
		}

		run := o.RunCategory(ctx, session, category, tier, params)
		runs = append(runs, run)
		if o.OnProgress != nil {
			o.OnProgress(i+1, len(categories), run)
		}
	}

	o.Log.WithFields(logrus.Fields{
		"session": session.ID,
		"runs":    len(runs),
	}).Info("Test sequence finished")
	return runs, nil
}

// RunCategory executes one category and returns its terminal TestRun. Errors
// along the way become the run's outcome; the only errors this method cannot
// absorb are programming mistakes in the state machine, which are logged.
func (o *Orchestrator) RunCategory(ctx context.Context, session *domain.Session, category domain.Category, tier domain.Tier, params domain.TierParams) domain.TestRun {
	run := domain.NewTestRun(session.ID, category, tier)
	log := o.Log.WithFields(logrus.Fields{
		"session":  session.ID,
		"category": category,
		"run_id":   run.ID,
	})

	if err := run.Begin(time.Now()); err != nil {
		log.WithError(err).Error("Test run state error")
		return run
	}

	req := probe.Request{
		Category: category,
		Target:   session.Target,
		Tier:     tier,
		Params:   params,
	}

	if category.NeedsWordlist() {
		users, passwords, err := o.Wordlists.EnsurePair(params.Wordlist)
		if err != nil {
			log.WithError(err).Error("Wordlist generation failed")
			o.finish(log, &run, domain.OutcomeFailed, err, nil)
			return run
		}
		req.Users = users
		req.Passwords = passwords
	}

	out, err := o.Invoker.Run(ctx, req)
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		// Operator interrupt: the child process is already terminated via
		// the context. Whatever output exists is kept, but an interrupted
		// run is never Completed.
		o.finish(log, &run, domain.OutcomeFailed, fmt.Errorf("interrupted: %w", ctx.Err()), out.Output)
	case err != nil:
		o.finish(log, &run, domain.OutcomeFailed, err, out.Output)
	case out.TimedOut:
		o.finish(log, &run, domain.OutcomeTimedOut, nil, out.Output)
	default:
		o.finish(log, &run, domain.OutcomeCompleted, nil, out.Output)
	}
	return run
}

func (o *Orchestrator) finish(log *logrus.Entry, run *domain.TestRun, outcome domain.Outcome, cause error, raw []byte) {
	if cause != nil {
		run.Error = cause.Error()
	}
	if err := run.Finish(outcome, time.Now()); err != nil {
		log.WithError(err).Error("Test run state error")
		return
	}

	if o.Store != nil {
		if _, err := o.Store.Save(run, raw); err != nil {
			log.WithError(err).Error("Failed to save test run artifact")
		}
	}

	log.WithFields(logrus.Fields{
		"outcome": run.Outcome,
		"runtime": run.CompletedAt.Sub(run.StartedAt).String(),
	}).Info("Test run finished")
}

func (o *Orchestrator) waitGap(ctx context.Context) error {
	if o.InterTestGap <= 0 {
		return nil
	}
	o.Log.WithField("gap", o.InterTestGap.String()).Info("Waiting between test categories")
	t := time.NewTimer(o.InterTestGap)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
