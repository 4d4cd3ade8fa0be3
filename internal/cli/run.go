package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"bytemomo/moray/internal/adapter/artifactstore"
	"bytemomo/moray/internal/adapter/logger"
	"bytemomo/moray/internal/adapter/yamlconfig"
	"bytemomo/moray/internal/domain"
	"bytemomo/moray/internal/probe"
	"bytemomo/moray/internal/runner"
	"bytemomo/moray/internal/wordlist"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	runTest     string
	runTier     string
	runThreads  int
	runDelay    time.Duration
	runWordlist string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one test category, or all of them, against the configured target",
	Long: `Execute attack-simulation categories against the configured session's
target. Categories in a full sweep run strictly one after another with a
fixed gap in between. A category failure is recorded and the sweep
continues; only a missing external tool aborts up front.

  moray run --test password-brute --tier quick
  moray run --test all --tier stealth
  moray run --test comprehensive-brute --tier custom --threads 4 --delay 10s --wordlist large`,
	RunE: runCommand,
}

func init() {
	runCmd.Flags().StringVar(&runTest, "test", "", "Test category, or 'all' (required)")
	runCmd.Flags().StringVar(&runTier, "tier", string(domain.TierStandard), "Intensity tier: quick|standard|comprehensive|stealth|custom")
	runCmd.Flags().IntVar(&runThreads, "threads", 0, "Parallelism inside the external tool (custom tier only)")
	runCmd.Flags().DurationVar(&runDelay, "delay", 0, "Delay between attempts (custom tier only)")
	runCmd.Flags().StringVar(&runWordlist, "wordlist", "", "Wordlist size class: small|medium|large (custom tier only)")
	_ = runCmd.MarkFlagRequired("test")
	rootCmd.AddCommand(runCmd)
}

func runCommand(cmd *cobra.Command, args []string) error {
	categories, err := parseCategories(runTest)
	if err != nil {
		return err
	}
	tier, params, err := resolveTier(runTier, tierOverrides{
		threads:     runThreads,
		threadsSet:  cmd.Flags().Changed("threads"),
		delay:       runDelay,
		delaySet:    cmd.Flags().Changed("delay"),
		wordlist:    runWordlist,
		wordlistSet: cmd.Flags().Changed("wordlist"),
	})
	if err != nil {
		return err
	}

	session, err := yamlconfig.LoadSession(outDir)
	if err != nil {
		return fmt.Errorf("load session (did you run configure?): %w", err)
	}

	// Re-point the log file at the session so its artifacts stay together.
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLoggerToStructured(level, filepath.Join(outDir, "logs", session.ID+".log"))

	store := artifactstore.New(outDir)
	orch := &runner.Orchestrator{
		Log:          logrus.WithField("session", session.ID),
		Invoker:      probe.NewInvoker(settings.ScannerBinary, settings.ClientBinary),
		Wordlists:    wordlist.New(store.WordlistDir()),
		Store:        store,
		InterTestGap: settings.InterTestGap,
	}

	var bar *progressbar.ProgressBar
	if len(categories) > 1 {
		bar = progressbar.NewOptions(len(categories),
			progressbar.OptionSetDescription("running categories"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		)
		orch.OnProgress = func(done, total int, run domain.TestRun) {
			_ = bar.Add(1)
		}
	}

	// Ctrl-C terminates the in-flight external process; the interrupted run
	// is recorded but never marked Completed.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := yamlconfig.MarkStarted(outDir, &session); err != nil {
		return err
	}

	runs, runErr := orch.RunAll(ctx, &session, categories, tier, params)
	printRunSummary(runs)
	if runErr != nil {
		return runErr
	}

	for _, r := range runs {
		if r.Outcome == domain.OutcomeFailed {
			return ErrTestFailures
		}
	}
	return nil
}

func parseCategories(name string) ([]domain.Category, error) {
	if name == "all" {
		return domain.AllCategories, nil
	}
	c := domain.Category(name)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []domain.Category{c}, nil
}

type tierOverrides struct {
	threads     int
	threadsSet  bool
	delay       time.Duration
	delaySet    bool
	wordlist    string
	wordlistSet bool
}

// resolveTier expands the tier preset and applies custom overrides. Overrides
// on a preset tier are rejected: presets are fixed bundles.
func resolveTier(name string, ov tierOverrides) (domain.Tier, domain.TierParams, error) {
	tier := domain.Tier(name)
	params, err := tier.Params()
	if err != nil {
		return "", domain.TierParams{}, err
	}

	if tier != domain.TierCustom {
		if ov.threadsSet || ov.delaySet || ov.wordlistSet {
			return "", domain.TierParams{}, fmt.Errorf("--threads, --delay and --wordlist require --tier custom")
		}
		return tier, params, nil
	}

	if ov.threadsSet {
		if ov.threads < 1 {
			return "", domain.TierParams{}, fmt.Errorf("--threads must be at least 1")
		}
		params.Threads = ov.threads
	}
	if ov.delaySet {
		if ov.delay < 0 {
			return "", domain.TierParams{}, fmt.Errorf("--delay cannot be negative")
		}
		params.AttemptDelay = ov.delay
	}
	if ov.wordlistSet {
		size := domain.SizeClass(ov.wordlist)
		if err := size.Validate(); err != nil {
			return "", domain.TierParams{}, err
		}
		params.Wordlist = size
	}
	return tier, params, nil
}

func printRunSummary(runs []domain.TestRun) {
	if len(runs) == 0 {
		return
	}
	fmt.Println()
	for _, r := range runs {
		switch r.Outcome {
		case domain.OutcomeCompleted:
			color.Green("  %-20s completed", r.Category)
		case domain.OutcomeTimedOut:
			color.Yellow("  %-20s completed (timed out)", r.Category)
		case domain.OutcomeFailed:
			color.Red("  %-20s not completed: %s", r.Category, r.Error)
		default:
			color.White("  %-20s %s", r.Category, r.Outcome)
		}
	}
	fmt.Println("\nAggregate with: moray report")
}
