// Package artifactstore persists TestRun artifacts as a directory tree of
// timestamped files. Filenames embed the session id, so concurrent
// invocations against different sessions never collide and the aggregator can
// recover a session's history from the filesystem alone.
package artifactstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bytemomo/moray/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Store writes and scans TestRun artifacts under one output directory.
type Store struct {
	OutDir string
}

// New creates a store rooted at outDir.
func New(outDir string) *Store { return &Store{OutDir: outDir} }

// ResultsDir is where TestRun summaries and raw output land.
func (s *Store) ResultsDir() string { return filepath.Join(s.OutDir, "results") }

// ReportsDir is where aggregated reports land.
func (s *Store) ReportsDir() string { return filepath.Join(s.OutDir, "reports") }

// WordlistDir is the wordlist cache directory.
func (s *Store) WordlistDir() string { return filepath.Join(s.OutDir, "wordlists") }

// LogDir is where session log files land.
func (s *Store) LogDir() string { return filepath.Join(s.OutDir, "logs") }

// Save persists one finished TestRun: the raw captured output as a .out file
// and the run summary as a sibling .json. It fills in run.RawOutputPath and
// returns the summary path. Artifacts are never rewritten; each run gets
// fresh files.
func (s *Store) Save(run *domain.TestRun, raw []byte) (string, error) {
	dir := s.ResultsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	base := fmt.Sprintf("%s_%s_%d", run.SessionID, run.Category, run.StartedAt.Unix())

	rawPath := filepath.Join(dir, base+".out")
	if err := os.WriteFile(rawPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("write raw output: %w", err)
	}
	run.RawOutputPath = rawPath

	jsonPath := filepath.Join(dir, base+".json")
	if err := writeJSON(jsonPath, run); err != nil {
		return "", fmt.Errorf("write run summary: %w", err)
	}

	log.WithFields(log.Fields{
		"session":  run.SessionID,
		"category": run.Category,
		"artifact": jsonPath,
	}).Info("Test run artifact saved")
	return jsonPath, nil
}

// Artifact pairs a loaded TestRun with the file it came from.
type Artifact struct {
	Run  domain.TestRun
	Path string
}

// ScanSession loads every TestRun artifact belonging to sessionID, ordered by
// start time. An empty sessionID loads every discoverable artifact. Unparsable
// files are skipped with a warning rather than failing the whole scan.
func (s *Store) ScanSession(sessionID string) ([]Artifact, error) {
	dir := s.ResultsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	var out []Artifact
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if sessionID != "" && !strings.HasPrefix(e.Name(), sessionID+"_") {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).WithField("artifact", path).Warn("Skipping unreadable artifact")
			continue
		}
		var run domain.TestRun
		if err := json.Unmarshal(data, &run); err != nil {
			log.WithError(err).WithField("artifact", path).Warn("Skipping malformed artifact")
			continue
		}
		out = append(out, Artifact{Run: run, Path: path})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Run.StartedAt.Before(out[j].Run.StartedAt)
	})
	return out, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
