package cli

import (
	"fmt"

	"bytemomo/moray/internal/cloud"
	"bytemomo/moray/internal/probe"

	"github.com/spf13/cobra"
)

var resolveGroup string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a deployed instance's address from its cloud resource group",
	Long: `Look up the database server deployed into a resource group through the
cloud CLI and print its address, ready to feed into configure.

  moray resolve --group detection-validation-rg`,
	RunE: resolveCommand,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveGroup, "group", "", "Cloud resource group name (required)")
	_ = resolveCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(resolveCmd)
}

func resolveCommand(cmd *cobra.Command, args []string) error {
	r := cloud.Resolver{Binary: settings.CloudBinary, Runner: probe.ExecRunner{}}
	addr, err := r.Resolve(cmd.Context(), resolveGroup)
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}
