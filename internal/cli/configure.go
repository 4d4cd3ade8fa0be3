package cli

import (
	"fmt"
	"time"

	"bytemomo/moray/internal/adapter/yamlconfig"
	"bytemomo/moray/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgHost     string
	cfgPort     uint16
	cfgUsername string
	cfgPassword string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the target database instance for a new session",
	Long: `Set the target address and credentials for subsequent runs. Each
configure creates a fresh session; a session whose tests have started is
never retargeted, so earlier results keep their meaning.

  moray configure --host db.example.internal --port 3306 --username tester`,
	RunE: configureCommand,
}

func init() {
	configureCmd.Flags().StringVar(&cfgHost, "host", "", "Target host (required)")
	configureCmd.Flags().Uint16Var(&cfgPort, "port", 0, "Target port (required)")
	configureCmd.Flags().StringVar(&cfgUsername, "username", "", "Username for authenticated probes")
	configureCmd.Flags().StringVar(&cfgPassword, "password", "", "Password for authenticated probes")
	_ = configureCmd.MarkFlagRequired("host")
	_ = configureCmd.MarkFlagRequired("port")
	rootCmd.AddCommand(configureCmd)
}

func configureCommand(cmd *cobra.Command, args []string) error {
	target := domain.Target{
		Host:     cfgHost,
		Port:     cfgPort,
		Username: cfgUsername,
		Password: cfgPassword,
	}

	session, err := domain.NewSession(target, time.Now())
	if err != nil {
		return err
	}
	if err := yamlconfig.SaveSession(outDir, session); err != nil {
		return err
	}

	color.Green("Session %s configured for %s", session.ID, target.String())
	fmt.Println("Run tests with: moray run --test all")
	return nil
}
