package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"bytemomo/moray/internal/domain"
)

// buildClientArgs assembles the database client invocation as an argument
// slice. --force keeps the client executing the remaining statements when the
// server rejects one; a rejected payload is still traffic the monitoring
// product must see.
func buildClientArgs(target domain.Target, script string) []string {
	args := []string{
		"--host", target.Host,
		"--port", strconv.Itoa(int(target.Port)),
		"--connect-timeout", "10",
		"--batch",
		"--force",
	}
	if target.Username != "" {
		args = append(args, "--user", target.Username)
	}
	if target.Password != "" {
		args = append(args, "--password="+target.Password)
	}
	return append(args, "-e", script)
}

// buildQueryScript joins the category's payloads into one statement batch,
// interleaving SLEEP calls to honour the tier's inter-attempt delay without
// spawning more than one client process.
func buildQueryScript(req Request) string {
	payloads := payloadsFor(req.Category)
	delay := int(req.Params.AttemptDelay.Seconds())

	var stmts []string
	for i, p := range payloads {
		if i > 0 && delay > 0 {
			stmts = append(stmts, fmt.Sprintf("DO SLEEP(%d)", delay))
		}
		stmts = append(stmts, p)
	}
	return strings.Join(stmts, "; ")
}

func (inv *Invoker) runQuery(ctx context.Context, req Request) (RawOutput, error) {
	script := buildQueryScript(req)
	if script == "" {
		return RawOutput{}, fmt.Errorf("%w: no payloads for category %q", domain.ErrProbeExecution, req.Category)
	}

	args := buildClientArgs(req.Target, script)
	out, err := inv.Runner.Run(ctx, inv.ClientBinary, args...)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return RawOutput{Output: out, TimedOut: true}, nil
	}
	if err != nil {
		// A nonzero client exit means the server rejected payloads or the
		// login; the traffic was still generated, which is the point of the
		// probe. Only a failure to execute the client at all is an error.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			note := fmt.Sprintf("\nclient exited: %v\n", err)
			return RawOutput{Output: append(out, note...)}, nil
		}
		return RawOutput{Output: out}, fmt.Errorf("%w: run %s: %v", domain.ErrProbeExecution, inv.ClientBinary, err)
	}
	return RawOutput{Output: out}, nil
}
