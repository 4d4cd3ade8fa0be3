// Package reporter turns the persisted TestRun artifacts of a session into a
// single summary document. It only ever reads artifacts; aggregating twice
// against an unchanged result directory yields the same category table.
package reporter

import (
	"time"

	"bytemomo/moray/internal/adapter/artifactstore"
	"bytemomo/moray/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Aggregator scans a session's result artifacts and builds its report.
type Aggregator struct {
	Store *artifactstore.Store
}

// Aggregate collects every artifact for sessionID (or every discoverable
// artifact when sessionID is empty) into a Report. Categories appear in their
// declared order; a category that ran more than once is represented by its
// most recent run, and a category with no artifact is reported as not run.
func (a Aggregator) Aggregate(sessionID string, target string) (domain.Report, error) {
	artifacts, err := a.Store.ScanSession(sessionID)
	if err != nil {
		return domain.Report{}, err
	}

	// ScanSession returns runs ordered by start time, so the last write per
	// category wins.
	latest := make(map[domain.Category]artifactstore.Artifact)
	for _, art := range artifacts {
		latest[art.Run.Category] = art
	}

	report := domain.Report{
		SessionID:   sessionID,
		Target:      target,
		GeneratedAt: time.Now().UTC(),
	}

	for _, category := range domain.AllCategories {
		entry := domain.ReportEntry{Category: category, Outcome: domain.OutcomePending}
		if art, ok := latest[category]; ok {
			entry.Outcome = art.Run.Outcome
			entry.Artifact = art.Path
			entry.RawOutput = art.Run.RawOutputPath
			entry.Note = art.Run.Error
		}
		report.Entries = append(report.Entries, entry)

		report.ExpectedAlerts = append(report.ExpectedAlerts, domain.ExpectedAlertEntry{
			Category: category,
			Alert:    category.ExpectedAlert(),
		})
	}

	log.WithFields(log.Fields{
		"session":   sessionID,
		"artifacts": len(artifacts),
	}).Info("Aggregated session artifacts")
	return report, nil
}
