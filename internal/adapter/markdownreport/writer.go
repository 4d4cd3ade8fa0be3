// Package markdownreport renders an aggregated session report as Markdown for
// the operator plus a JSON sibling for tooling. Source artifacts are never
// touched.
package markdownreport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bytemomo/moray/internal/domain"
)

// Writer writes report documents into one directory.
type Writer struct {
	OutDir string
}

// New creates a report writer rooted at outDir.
func New(outDir string) *Writer { return &Writer{OutDir: outDir} }

// Save renders the report and returns the Markdown path.
func (w *Writer) Save(report domain.Report) (string, error) {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	base := "report"
	if report.SessionID != "" {
		base = report.SessionID + "_report"
	}

	mdPath := filepath.Join(w.OutDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(Render(report)), 0o644); err != nil {
		return "", fmt.Errorf("write markdown report: %w", err)
	}

	jsonPath := filepath.Join(w.OutDir, base+".json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write json report: %w", err)
	}
	return mdPath, nil
}

// Render produces the Markdown document.
func Render(report domain.Report) string {
	var sb strings.Builder
	sb.WriteString("# Detection Validation Report\n\n")
	if report.SessionID != "" {
		fmt.Fprintf(&sb, "Session: %s\n\n", report.SessionID)
	}
	if report.Target != "" {
		fmt.Fprintf(&sb, "Target: %s\n\n", report.Target)
	}
	fmt.Fprintf(&sb, "Generated: %s\n\n", report.GeneratedAt.UTC().Format(time.RFC3339))

	sb.WriteString("## Test Results\n\n")
	sb.WriteString("| Category | Outcome | Artifact | Notes |\n")
	sb.WriteString("|----------|---------|----------|-------|\n")
	for _, e := range report.Entries {
		artifact := e.Artifact
		if artifact == "" {
			artifact = "-"
		}
		note := e.Note
		if note == "" && e.Outcome == domain.OutcomeFailed && e.RawOutput != "" {
			note = "see " + e.RawOutput
		}
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", e.Category, OutcomeLabel(e.Outcome), artifact, note)
	}
	sb.WriteString("\n")

	sb.WriteString("## Expected Alerts\n\n")
	sb.WriteString("The monitoring product under validation should have raised the\n")
	sb.WriteString("following alerts for the categories that ran. This list is static\n")
	sb.WriteString("operator reference, not derived from the run.\n\n")
	sb.WriteString("| Category | Expected Alert |\n")
	sb.WriteString("|----------|----------------|\n")
	for _, e := range report.ExpectedAlerts {
		fmt.Fprintf(&sb, "| %s | %s |\n", e.Category, e.Alert)
	}
	sb.WriteString("\n")
	return sb.String()
}

// OutcomeLabel maps an outcome onto its operator-facing table label.
func OutcomeLabel(o domain.Outcome) string {
	switch o {
	case domain.OutcomeCompleted:
		return "Completed"
	case domain.OutcomeTimedOut:
		return "Completed (timed out)"
	case domain.OutcomeFailed:
		return "Not Completed"
	default:
		return "Not Run"
	}
}
