package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"hostbridge/internal/app"
	"hostbridge/internal/config"
	"hostbridge/internal/formatting"
	"hostbridge/internal/upstream"
)

var capabilitiesConfigPath string

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List every capability the server would expose",
	Long: `Loads the capability registry exactly as the serve command would —
including the duplicate-name check — and prints the resulting table
without starting a server or contacting the upstream API.

Useful for verifying a build and for spotting name collisions before
deployment.`,
	Args: cobra.NoArgs,
	RunE: runCapabilities,
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(capabilitiesConfigPath)
	if err != nil {
		return err
	}

	// No upstream call is made while listing, so placeholder key
	// material is enough to construct the modules.
	reg, err := app.Registry(cfg, upstream.NewCredentials("offline", "offline", "offline"))
	if err != nil {
		return err
	}

	formatting.CapabilityTable(os.Stdout, reg.Entries())
	return nil
}

func init() {
	capabilitiesCmd.Flags().StringVar(&capabilitiesConfigPath, "config", "", "Path to a YAML configuration file")
	rootCmd.AddCommand(capabilitiesCmd)
}
