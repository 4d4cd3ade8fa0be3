package probe

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner executes one external process and returns its combined
// stdout/stderr. Probes go through this seam so tests can substitute a fake
// instead of spawning binaries.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

// ExecRunner runs commands through os/exec with an argument slice; command
// lines are never assembled as shell strings.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
