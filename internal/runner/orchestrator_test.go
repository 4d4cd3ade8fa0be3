package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"bytemomo/moray/internal/domain"
	"bytemomo/moray/internal/probe"
	"bytemomo/moray/internal/wordlist"

	"github.com/sirupsen/logrus"
)

type fakeInvoker struct {
	mu       sync.Mutex
	executed []domain.Category

	depErr    error
	failOn    map[domain.Category]error
	timeoutOn map[domain.Category]bool
}

func (f *fakeInvoker) CheckDependencies([]domain.Category) error { return f.depErr }

func (f *fakeInvoker) Run(ctx context.Context, req probe.Request) (probe.RawOutput, error) {
	f.mu.Lock()
	f.executed = append(f.executed, req.Category)
	f.mu.Unlock()

	if err, ok := f.failOn[req.Category]; ok {
		return probe.RawOutput{}, err
	}
	if f.timeoutOn[req.Category] {
		return probe.RawOutput{Output: []byte("partial"), TimedOut: true}, nil
	}
	out := fmt.Sprintf("probe output for %s against %s", req.Category, req.Target.String())
	return probe.RawOutput{Output: []byte(out)}, nil
}

type fakeWordlists struct{}

func (fakeWordlists) EnsurePair(size domain.SizeClass) (wordlist.Wordlist, wordlist.Wordlist, error) {
	return wordlist.Wordlist{Kind: wordlist.KindUsernames, Size: size, Path: "users.txt", Entries: []string{"admin"}},
		wordlist.Wordlist{Kind: wordlist.KindPasswords, Size: size, Path: "passwords.txt", Entries: []string{"admin"}},
		nil
}

type failingWordlists struct{}

func (failingWordlists) EnsurePair(domain.SizeClass) (wordlist.Wordlist, wordlist.Wordlist, error) {
	return wordlist.Wordlist{}, wordlist.Wordlist{}, fmt.Errorf("%w: cache dir unwritable", domain.ErrGeneration)
}

type recordingSink struct {
	mu   sync.Mutex
	runs []domain.TestRun
}

func (s *recordingSink) Save(run *domain.TestRun, raw []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *run)
	return "artifact.json", nil
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func testSession(t *testing.T) *domain.Session {
	t.Helper()
	s, err := domain.NewSession(domain.Target{Host: "db.example.internal", Port: 3342, Username: "tester"}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return &s
}

func params(t *testing.T) domain.TierParams {
	t.Helper()
	p, err := domain.TierQuick.Params()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunAllPreservesDeclaredOrder(t *testing.T) {
	inv := &fakeInvoker{failOn: map[domain.Category]error{
		domain.SQLInjection: fmt.Errorf("%w: boom", domain.ErrProbeExecution),
	}}
	sink := &recordingSink{}
	o := &Orchestrator{Log: quietLog(), Invoker: inv, Wordlists: fakeWordlists{}, Store: sink}

	runs, err := o.RunAll(context.Background(), testSession(t), domain.AllCategories, domain.TierQuick, params(t))
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if len(runs) != len(domain.AllCategories) {
		t.Fatalf("expected %d runs, got %d", len(domain.AllCategories), len(runs))
	}
	for i, run := range runs {
		if run.Category != domain.AllCategories[i] {
			t.Errorf("run %d is %s, want %s", i, run.Category, domain.AllCategories[i])
		}
	}
	// A mid-sequence failure must not stop later categories.
	for i, c := range inv.executed {
		if c != domain.AllCategories[i] {
			t.Errorf("execution order diverged at %d: %s", i, c)
		}
	}
}

func TestRunAllMissingDependencyIsFatal(t *testing.T) {
	inv := &fakeInvoker{depErr: fmt.Errorf("%w: nmap not found in PATH", domain.ErrDependencyMissing)}
	sink := &recordingSink{}
	o := &Orchestrator{Log: quietLog(), Invoker: inv, Wordlists: fakeWordlists{}, Store: sink}

	runs, err := o.RunAll(context.Background(), testSession(t), domain.AllCategories, domain.TierQuick, params(t))
	if !errors.Is(err, domain.ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("no TestRun may be recorded before the dependency check, got %d", len(runs))
	}
	if len(inv.executed) != 0 {
		t.Errorf("no probe may run, got %v", inv.executed)
	}
	if len(sink.runs) != 0 {
		t.Errorf("no artifact may be written, got %d", len(sink.runs))
	}
}

func TestRunCategoryOutcomes(t *testing.T) {
	inv := &fakeInvoker{
		failOn:    map[domain.Category]error{domain.SQLInjection: fmt.Errorf("%w: exec failed", domain.ErrProbeExecution)},
		timeoutOn: map[domain.Category]bool{domain.PasswordBrute: true},
	}
	sink := &recordingSink{}
	o := &Orchestrator{Log: quietLog(), Invoker: inv, Wordlists: fakeWordlists{}, Store: sink}
	session := testSession(t)

	run := o.RunCategory(context.Background(), session, domain.PasswordBrute, domain.TierQuick, params(t))
	if run.Outcome != domain.OutcomeTimedOut {
		t.Errorf("timed-out probe must yield TimedOut, got %q", run.Outcome)
	}

	run = o.RunCategory(context.Background(), session, domain.SQLInjection, domain.TierQuick, params(t))
	if run.Outcome != domain.OutcomeFailed {
		t.Errorf("failing probe must yield Failed, got %q", run.Outcome)
	}
	if run.Error == "" {
		t.Error("failed run must carry its cause")
	}

	run = o.RunCategory(context.Background(), session, domain.SuspiciousQueries, domain.TierQuick, params(t))
	if run.Outcome != domain.OutcomeCompleted {
		t.Errorf("clean probe must yield Completed, got %q", run.Outcome)
	}

	if len(sink.runs) != 3 {
		t.Errorf("every run must be persisted, got %d artifacts", len(sink.runs))
	}
	for _, saved := range sink.runs {
		if saved.SessionID != session.ID {
			t.Errorf("artifact belongs to session %q, want %q", saved.SessionID, session.ID)
		}
	}
}

func TestRunCategoryWordlistFailure(t *testing.T) {
	inv := &fakeInvoker{}
	o := &Orchestrator{Log: quietLog(), Invoker: inv, Wordlists: failingWordlists{}, Store: &recordingSink{}}

	run := o.RunCategory(context.Background(), testSession(t), domain.PasswordBrute, domain.TierQuick, params(t))
	if run.Outcome != domain.OutcomeFailed {
		t.Fatalf("generation failure must fail the category, got %q", run.Outcome)
	}
	if len(inv.executed) != 0 {
		t.Error("no probe may be dispatched without its wordlists")
	}
}

func TestRunAllInterruptNeverCompletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inv := &interruptingInvoker{cancel: cancel}
	o := &Orchestrator{
		Log:          quietLog(),
		Invoker:      inv,
		Wordlists:    fakeWordlists{},
		Store:        &recordingSink{},
		InterTestGap: time.Minute,
	}

	runs, err := o.RunAll(ctx, testSession(t), domain.AllCategories, domain.TierQuick, params(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("the gap wait must observe the cancel, got %d runs", len(runs))
	}
	if runs[0].Outcome == domain.OutcomeCompleted {
		t.Error("an interrupted run must never be Completed")
	}
}

// interruptingInvoker cancels the run context during the first probe, like an
// operator pressing Ctrl-C mid-sweep.
type interruptingInvoker struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (i *interruptingInvoker) CheckDependencies([]domain.Category) error { return nil }

func (i *interruptingInvoker) Run(ctx context.Context, req probe.Request) (probe.RawOutput, error) {
	i.once.Do(i.cancel)
	<-ctx.Done()
	return probe.RawOutput{Output: []byte("partial")}, ctx.Err()
}

func TestRunAllProgressHook(t *testing.T) {
	var seen []domain.Category
	o := &Orchestrator{
		Log:       quietLog(),
		Invoker:   &fakeInvoker{},
		Wordlists: fakeWordlists{},
		Store:     &recordingSink{},
		OnProgress: func(done, total int, run domain.TestRun) {
			seen = append(seen, run.Category)
		},
	}

	categories := []domain.Category{domain.SQLInjection, domain.SuspiciousQueries}
	if _, err := o.RunAll(context.Background(), testSession(t), categories, domain.TierStandard, params(t)); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Fatalf("progress hook fired %d times, want 2", len(seen))
	}
}
