// Package yamlconfig persists the lightweight session state that ties the
// configure, run, and report commands together across process invocations.
package yamlconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bytemomo/moray/internal/domain"

	"gopkg.in/yaml.v3"
)

// SessionFileName is the session state file under the output directory.
const SessionFileName = "session.yaml"

// ErrNoSession is returned when no session has been configured yet.
var ErrNoSession = errors.New("no configured session found")

// SaveSession writes the session state file under outDir.
func SaveSession(outDir string, s domain.Session) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// Credentials may be embedded; keep the file operator-readable only.
	if err := os.WriteFile(filepath.Join(outDir, SessionFileName), data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// LoadSession reads the session state file under outDir.
func LoadSession(outDir string) (domain.Session, error) {
	data, err := os.ReadFile(filepath.Join(outDir, SessionFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s domain.Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("parse session file: %w", err)
	}
	if err := s.Target.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("stored session is invalid: %w", err)
	}
	return s, nil
}

// MarkStarted stamps the stored session as started so a later configure
// cannot silently retarget it. No-op if already stamped.
func MarkStarted(outDir string, s *domain.Session) error {
	if s.Started {
		return nil
	}
	s.Started = true
	return SaveSession(outDir, *s)
}
