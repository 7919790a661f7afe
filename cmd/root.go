package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the hostbridge application.
var rootCmd = &cobra.Command{
	Use:   "hostbridge",
	Short: "Expose a web-hosting provider's API as MCP capabilities",
	Long: `hostbridge is an MCP server that exposes the operations of an
upstream web-hosting provider (domains, hosting packages, email,
databases, DNS, account) as invocable capabilities.

Callers discover the capability list and its argument schemas through
MCP tool discovery and invoke capabilities by name; hostbridge
validates every argument, drives the upstream API, and normalizes its
inconsistent response shapes into a single result convention.`,
	// SilenceUsage keeps handled errors from being followed by a
	// usage dump.
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

// SetVersion sets the version for the root command. Called from the
// main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "hostbridge version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
