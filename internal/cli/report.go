package cli

import (
	"errors"
	"fmt"

	"bytemomo/moray/internal/adapter/artifactstore"
	"bytemomo/moray/internal/adapter/markdownreport"
	"bytemomo/moray/internal/adapter/yamlconfig"
	"bytemomo/moray/internal/domain"
	"bytemomo/moray/internal/reporter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reportSession string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate a session's result artifacts into a summary report",
	Long: `Scan the persisted test run artifacts and render a Markdown report with
the category outcomes and the alerts the monitoring product should have
raised. Defaults to the currently configured session; --session selects an
earlier one, and an empty id aggregates every discoverable artifact.

  moray report
  moray report --session 1756444800-db-example`,
	RunE: reportCommand,
}

func init() {
	reportCmd.Flags().StringVar(&reportSession, "session", "", "Session id to aggregate (default: current session)")
	rootCmd.AddCommand(reportCmd)
}

func reportCommand(cmd *cobra.Command, args []string) error {
	store := artifactstore.New(outDir)

	sessionID := reportSession
	target := ""
	if sessionID == "" {
		session, err := yamlconfig.LoadSession(outDir)
		if err != nil && !errors.Is(err, yamlconfig.ErrNoSession) {
			return err
		}
		if err == nil {
			sessionID = session.ID
			target = session.Target.String()
		}
	}

	report, err := reporter.Aggregator{Store: store}.Aggregate(sessionID, target)
	if err != nil {
		return err
	}

	path, err := markdownreport.New(store.ReportsDir()).Save(report)
	if err != nil {
		return err
	}

	for _, e := range report.Entries {
		label := markdownreport.OutcomeLabel(e.Outcome)
		switch e.Outcome {
		case domain.OutcomeCompleted:
			color.Green("  %-20s %s", e.Category, label)
		case domain.OutcomeTimedOut:
			color.Yellow("  %-20s %s", e.Category, label)
		case domain.OutcomeFailed:
			color.Red("  %-20s %s", e.Category, label)
		default:
			color.White("  %-20s %s", e.Category, label)
		}
	}
	fmt.Printf("\nReport written to %s\n", path)
	return nil
}
