package domain

import "time"

// ReportEntry is one row of the category table in an aggregated report.
type ReportEntry struct {
	Category Category `json:"category"`
	Outcome  Outcome  `json:"outcome"`

	// Artifact references the persisted TestRun summary; empty when the
	// category never ran in this session.
	Artifact  string `json:"artifact,omitempty"`
	RawOutput string `json:"raw_output,omitempty"`
	Note      string `json:"note,omitempty"`
}

// ExpectedAlertEntry pairs a category with the alert the downstream
// monitoring product should have raised for it.
type ExpectedAlertEntry struct {
	Category Category `json:"category"`
	Alert    string   `json:"alert"`
}

// Report aggregates the TestRun history of one session. It is read-only once
// generated; regenerating against the same artifact set yields the same
// category table.
type Report struct {
	SessionID      string               `json:"session_id"`
	Target         string               `json:"target,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
	Entries        []ReportEntry        `json:"entries"`
	ExpectedAlerts []ExpectedAlertEntry `json:"expected_alerts"`
}

// HasFailure reports whether any category ended Failed. TimedOut is an
// expected outcome for exhaustive sweeps and does not count.
func (r Report) HasFailure() bool {
	for _, e := range r.Entries {
		if e.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}
