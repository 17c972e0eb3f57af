// Package commands implements the CLI commands for xdrdump.
package commands

import (
	"github.com/marmos91/xdrwire/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// globalFlags holds the persistent flags shared by all subcommands.
type globalFlags struct {
	Output  string
	Verbose bool
}

var flags globalFlags

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xdrdump",
	Short: "Inspect XDR streams and record-marked captures",
	Long: `xdrdump is a command-line tool for inspecting XDR (RFC 4506) binary data.

Use it to walk record-marked streams (RFC 5531 record marking, as used by
RPC over TCP), listing every fragment with its offset and length, or to
decode a sequence of XDR values from a raw capture.

Use "xdrdump [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flags.Output, _ = cmd.Flags().GetString("output")
		flags.Verbose, _ = cmd.Flags().GetBool("verbose")
		logger.Init(flags.Verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(scanCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
