package reporter

import (
	"reflect"
	"testing"
	"time"

	"bytemomo/moray/internal/adapter/artifactstore"
	"bytemomo/moray/internal/domain"
)

func persistRun(t *testing.T, store *artifactstore.Store, sessionID string, category domain.Category, outcome domain.Outcome, started time.Time) {
	t.Helper()
	run := domain.NewTestRun(sessionID, category, domain.TierQuick)
	if err := run.Begin(started); err != nil {
		t.Fatal(err)
	}
	if err := run.Finish(outcome, started.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(&run, []byte("output")); err != nil {
		t.Fatal(err)
	}
}

func TestAggregateClassifiesCategories(t *testing.T) {
	store := artifactstore.New(t.TempDir())
	persistRun(t, store, "sess-1", domain.PasswordBrute, domain.OutcomeCompleted, time.Unix(1000, 0))
	persistRun(t, store, "sess-1", domain.SQLInjection, domain.OutcomeFailed, time.Unix(2000, 0))
	persistRun(t, store, "sess-1", domain.ComprehensiveBrute, domain.OutcomeTimedOut, time.Unix(3000, 0))

	report, err := Aggregator{Store: store}.Aggregate("sess-1", "db.example.internal:3342")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(report.Entries) != len(domain.AllCategories) {
		t.Fatalf("report must cover every declared category, got %d entries", len(report.Entries))
	}

	byCategory := map[domain.Category]domain.ReportEntry{}
	for _, e := range report.Entries {
		byCategory[e.Category] = e
	}

	if e := byCategory[domain.PasswordBrute]; e.Outcome != domain.OutcomeCompleted || e.Artifact == "" {
		t.Errorf("password-brute entry wrong: %+v", e)
	}
	if e := byCategory[domain.SQLInjection]; e.Outcome != domain.OutcomeFailed {
		t.Errorf("sql-injection should be failed, got %+v", e)
	}
	if e := byCategory[domain.ComprehensiveBrute]; e.Outcome != domain.OutcomeTimedOut {
		t.Errorf("comprehensive-brute should be timed out, got %+v", e)
	}
	if e := byCategory[domain.ShellCommands]; e.Outcome != domain.OutcomePending || e.Artifact != "" {
		t.Errorf("never-run category must be pending with no artifact, got %+v", e)
	}

	if report.HasFailure() != true {
		t.Error("a failed category must surface through HasFailure")
	}
}

func TestAggregateDeclaredOrder(t *testing.T) {
	store := artifactstore.New(t.TempDir())
	// Persist out of declared order; the report must not care.
	persistRun(t, store, "sess-1", domain.ShellCommands, domain.OutcomeCompleted, time.Unix(1000, 0))
	persistRun(t, store, "sess-1", domain.PasswordBrute, domain.OutcomeCompleted, time.Unix(2000, 0))

	report, err := Aggregator{Store: store}.Aggregate("sess-1", "")
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range report.Entries {
		if e.Category != domain.AllCategories[i] {
			t.Errorf("entry %d is %s, want %s", i, e.Category, domain.AllCategories[i])
		}
	}
}

func TestAggregateLatestRunWins(t *testing.T) {
	store := artifactstore.New(t.TempDir())
	persistRun(t, store, "sess-1", domain.PasswordBrute, domain.OutcomeFailed, time.Unix(1000, 0))
	persistRun(t, store, "sess-1", domain.PasswordBrute, domain.OutcomeCompleted, time.Unix(5000, 0))

	report, err := Aggregator{Store: store}.Aggregate("sess-1", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range report.Entries {
		if e.Category == domain.PasswordBrute && e.Outcome != domain.OutcomeCompleted {
			t.Errorf("most recent run must win, got %q", e.Outcome)
		}
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	store := artifactstore.New(t.TempDir())
	persistRun(t, store, "sess-1", domain.PasswordBrute, domain.OutcomeCompleted, time.Unix(1000, 0))
	persistRun(t, store, "sess-1", domain.Enumeration, domain.OutcomeTimedOut, time.Unix(2000, 0))

	agg := Aggregator{Store: store}
	first, err := agg.Aggregate("sess-1", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := agg.Aggregate("sess-1", "")
	if err != nil {
		t.Fatal(err)
	}

	// Timestamps aside, the tables must match exactly.
	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Error("category table differs between aggregations")
	}
	if !reflect.DeepEqual(first.ExpectedAlerts, second.ExpectedAlerts) {
		t.Error("expected alert list differs between aggregations")
	}
}

func TestAggregateExpectedAlertsAreStatic(t *testing.T) {
	store := artifactstore.New(t.TempDir())

	report, err := Aggregator{Store: store}.Aggregate("sess-empty", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.ExpectedAlerts) != len(domain.AllCategories) {
		t.Errorf("expected alerts are static metadata, got %d entries", len(report.ExpectedAlerts))
	}
	for _, e := range report.ExpectedAlerts {
		if e.Alert == "" {
			t.Errorf("category %s missing its expected alert", e.Category)
		}
	}
}
