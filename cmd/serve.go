package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hostbridge/internal/app"
	"hostbridge/internal/config"
	"hostbridge/pkg/logging"
)

var (
	serveConfigPath string
	serveDebug      bool
	serveTransport  string
	serveHost       string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hostbridge MCP server",
	Long: `Starts the MCP server and serves capability discovery and invocation
until interrupted.

Credentials for the upstream hosting API are read from the environment
and are required before startup:

  ` + "HOSTBRIDGE_API_KEY, HOSTBRIDGE_OAUTH_KEY, HOSTBRIDGE_COMBINED_KEY" + `

Configuration is read from the file given with --config, falling back
to built-in defaults. Flags override the file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("transport") {
		cfg.Transport = config.Transport(serveTransport)
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if serveDebug {
		level = logging.LevelDebug
	}
	// The MCP stdio transport owns stdout, so logs always go to stderr.
	logging.Init(level, os.Stderr)

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run(cmd.Context())
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a YAML configuration file")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveTransport, "transport", string(config.TransportStdio), "MCP transport: stdio, sse, or streamable-http")
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "Host to bind network transports to")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to bind network transports to")

	rootCmd.AddCommand(serveCmd)
}
