package domain

import (
	"fmt"
	"strings"
	"time"
)

// Session is one operator-configured testing context. Every TestRun belongs
// to exactly one session, and every artifact the run produces embeds the
// session id in its filename. There is no destruction step; artifacts outlive
// the session on disk.
type Session struct {
	ID        string    `yaml:"id" json:"id"`
	Target    Target    `yaml:"target" json:"target"`
	StartTime time.Time `yaml:"start_time" json:"start_time"`

	// Started flips when the first TestRun under this session dispatches.
	// A started session's target is immutable: reconfiguring creates a new
	// session instead, so prior results keep their interpretation.
	Started bool `yaml:"started" json:"started"`
}

// NewSession validates the target and mints a session identified by the
// current timestamp plus a host suffix.
func NewSession(target Target, now time.Time) (Session, error) {
	if err := target.Validate(); err != nil {
		return Session{}, err
	}
	return Session{
		ID:        fmt.Sprintf("%d-%s", now.Unix(), hostSuffix(target.Host)),
		Target:    target,
		StartTime: now,
	}, nil
}

// hostSuffix reduces a host to a short filename-safe fragment.
func hostSuffix(host string) string {
	var b strings.Builder
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
		if b.Len() >= 16 {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}
