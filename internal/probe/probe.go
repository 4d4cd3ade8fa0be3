// Package probe shells out to the external tools that generate test traffic:
// the network scanner for credential sweeps and enumeration, and the database
// client for authenticated query-level probes. Each Run spawns exactly one
// probe invocation and never retries; repeating a brute-force sweep would
// duplicate attack traffic against a live target.
package probe

import (
	"context"
	"fmt"
	"time"

	"bytemomo/moray/internal/domain"
	"bytemomo/moray/internal/wordlist"

	log "github.com/sirupsen/logrus"
)

// Request carries everything one probe invocation needs.
type Request struct {
	Category domain.Category
	Target   domain.Target
	Tier     domain.Tier
	Params   domain.TierParams

	// Users and Passwords are set for categories that consume wordlists.
	Users     wordlist.Wordlist
	Passwords wordlist.Wordlist

	// Timeout bounds the invocation; zero means the tier default for the
	// category.
	Timeout time.Duration
}

// RawOutput is the verbatim captured output of one probe invocation. A
// timeout is an expected outcome for exhaustive sweeps against a live,
// possibly rate-limiting target, so it is flagged here rather than raised as
// an error.
type RawOutput struct {
	Output   []byte
	TimedOut bool
	Duration time.Duration
}

// Invoker builds and executes external tool invocations.
type Invoker struct {
	ScannerBinary string
	ClientBinary  string
	Runner        CommandRunner
}

// NewInvoker wires an invoker to the real process runner.
func NewInvoker(scannerBinary, clientBinary string) *Invoker {
	return &Invoker{
		ScannerBinary: scannerBinary,
		ClientBinary:  clientBinary,
		Runner:        ExecRunner{},
	}
}

// CheckDependencies verifies every external binary the given categories need
// is present. Called once before any category runs; a missing binary aborts
// the whole run before any network activity.
func (inv *Invoker) CheckDependencies(categories []domain.Category) error {
	needed := map[string]bool{}
	for _, c := range categories {
		switch c.Kind() {
		case domain.KindNetwork:
			needed[inv.ScannerBinary] = true
		case domain.KindQuery:
			needed[inv.ClientBinary] = true
		}
	}
	for bin := range needed {
		if _, err := inv.Runner.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %s not found in PATH", domain.ErrDependencyMissing, bin)
		}
	}
	return nil
}

// Run executes one probe for the requested category and captures its output.
// Exactly one child process is spawned per call.
func (inv *Invoker) Run(ctx context.Context, req Request) (RawOutput, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = req.Tier.Timeout(req.Category)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.WithFields(log.Fields{
		"category": req.Category,
		"target":   req.Target.String(),
		"tier":     req.Tier,
		"timeout":  timeout.String(),
	}).Info("Dispatching probe")

	start := time.Now()
	var (
		out RawOutput
		err error
	)
	switch req.Category.Kind() {
	case domain.KindNetwork:
		out, err = inv.runNetwork(ctx, req)
	default:
		out, err = inv.runQuery(ctx, req)
	}
	out.Duration = time.Since(start)

	if err != nil {
		log.WithError(err).WithField("category", req.Category).Error("Probe execution failed")
		return out, err
	}
	if out.TimedOut {
		log.WithFields(log.Fields{
			"category": req.Category,
			"runtime":  out.Duration.String(),
		}).Warn("Probe hit its timeout")
	}
	return out, nil
}
