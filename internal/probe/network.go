package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bytemomo/moray/internal/domain"

	nmap "github.com/Ullaakut/nmap/v3"
)

// networkPlan is the scanner invocation a network-level category expands to.
// Kept as plain data so tests can check script selection and arguments
// without executing the scanner.
type networkPlan struct {
	Scripts    []string
	ScriptArgs map[string]string
	Timing     nmap.Timing
}

// buildNetworkPlan maps a category and tier onto scanner scripts and the
// brute-library arguments carrying wordlist paths, thread count, and delay.
func buildNetworkPlan(req Request) (networkPlan, func(), error) {
	args := map[string]string{
		"brute.threads": strconv.Itoa(max(1, req.Params.Threads)),
		"brute.delay":   fmt.Sprintf("%.0fs", req.Params.AttemptDelay.Seconds()),
	}
	cleanup := func() {}

	plan := networkPlan{ScriptArgs: args, Timing: timingFor(req.Tier)}

	switch req.Category {
	case domain.PasswordBrute:
		// Sweep passwords against the single configured account.
		user := req.Target.Username
		if user == "" {
			user = "root"
		}
		path, rm, err := singleEntryFile("userdb", user)
		if err != nil {
			return networkPlan{}, cleanup, err
		}
		cleanup = rm
		plan.Scripts = []string{"mysql-brute"}
		args["userdb"] = path
		args["passdb"] = req.Passwords.Path

	case domain.UsernameBrute:
		// Sweep usernames with a single throwaway password.
		pass := req.Target.Password
		if pass == "" {
			pass = "invalid-password"
		}
		path, rm, err := singleEntryFile("passdb", pass)
		if err != nil {
			return networkPlan{}, cleanup, err
		}
		cleanup = rm
		plan.Scripts = []string{"mysql-brute"}
		args["userdb"] = req.Users.Path
		args["passdb"] = path

	case domain.ComprehensiveBrute:
		plan.Scripts = []string{"mysql-brute"}
		args["userdb"] = req.Users.Path
		args["passdb"] = req.Passwords.Path

	case domain.Enumeration:
		plan.Scripts = []string{
			"mysql-info",
			"mysql-enum",
			"mysql-empty-password",
			"mysql-databases",
			"mysql-users",
		}
		if req.Target.Username != "" {
			args["mysqluser"] = req.Target.Username
			args["mysqlpass"] = req.Target.Password
		}

	default:
		return networkPlan{}, cleanup, fmt.Errorf("category %q is not a network probe", req.Category)
	}

	return plan, cleanup, nil
}

func (inv *Invoker) runNetwork(ctx context.Context, req Request) (RawOutput, error) {
	plan, cleanup, err := buildNetworkPlan(req)
	defer cleanup()
	if err != nil {
		return RawOutput{}, fmt.Errorf("%w: %v", domain.ErrProbeExecution, err)
	}

	binaryPath, err := inv.Runner.LookPath(inv.ScannerBinary)
	if err != nil {
		return RawOutput{}, fmt.Errorf("%w: %s not found in PATH", domain.ErrDependencyMissing, inv.ScannerBinary)
	}

	opts := []nmap.Option{
		nmap.WithBinaryPath(binaryPath),
		nmap.WithTargets(req.Target.Host),
		nmap.WithPorts(strconv.Itoa(int(req.Target.Port))),
		nmap.WithSkipHostDiscovery(),
		nmap.WithDisabledDNSResolution(),
		nmap.WithScripts(plan.Scripts...),
		nmap.WithScriptArguments(plan.ScriptArgs),
		nmap.WithTimingTemplate(plan.Timing),
	}

	scanner, err := nmap.NewScanner(ctx, opts...)
	if err != nil {
		return RawOutput{}, fmt.Errorf("%w: create scanner: %v", domain.ErrProbeExecution, err)
	}

	result, warnings, err := scanner.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return RawOutput{Output: []byte("scan exceeded its configured timeout\n"), TimedOut: true}, nil
	}
	if err != nil {
		return RawOutput{}, fmt.Errorf("%w: run %s: %v", domain.ErrProbeExecution, inv.ScannerBinary, err)
	}

	return RawOutput{Output: renderScanOutput(req, result, warnings)}, nil
}

func timingFor(tier domain.Tier) nmap.Timing {
	switch tier {
	case domain.TierStealth:
		return nmap.TimingSneaky
	case domain.TierQuick:
		return nmap.TimingAggressive
	default:
		return nmap.TimingNormal
	}
}

// renderScanOutput flattens the parsed scan into the verbatim text artifact
// the aggregator references.
func renderScanOutput(req Request, result *nmap.Run, warnings *[]string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s against %s\n", req.Category, req.Target.String())

	for _, h := range result.Hosts {
		for _, p := range h.Ports {
			fmt.Fprintf(&sb, "port %d/%s state=%s service=%s\n", p.ID, p.Protocol, p.State.State, p.Service.Name)
			for _, script := range p.Scripts {
				fmt.Fprintf(&sb, "--- script %s ---\n%s\n", script.ID, script.Output)
			}
		}
	}
	if warnings != nil {
		for _, w := range *warnings {
			fmt.Fprintf(&sb, "warning: %s\n", w)
		}
	}
	if result.Stats.Finished.Summary != "" {
		fmt.Fprintf(&sb, "%s\n", result.Stats.Finished.Summary)
	}
	return []byte(sb.String())
}

// singleEntryFile writes a one-line scratch dictionary for scripts that need
// a file path even for a single candidate.
func singleEntryFile(prefix, entry string) (string, func(), error) {
	f, err := os.CreateTemp("", prefix+"-*.txt")
	if err != nil {
		return "", func() {}, fmt.Errorf("%w: scratch dictionary: %v", domain.ErrProbeExecution, err)
	}
	if _, err := f.WriteString(entry + "\n"); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", func() {}, fmt.Errorf("%w: scratch dictionary: %v", domain.ErrProbeExecution, err)
	}
	f.Close()
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
