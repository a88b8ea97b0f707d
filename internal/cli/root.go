package cli

import (
	"github.com/spf13/cobra"
)

const version = "0.2.0"

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands.
// Running spinesq with no arguments performs one launch check, matching the
// original cron-friendly invocation.
var rootCmd = &cobra.Command{
	Use:   "spinesq",
	Short: "spinesq - singleton supervisor for the spines queue worker",
	Long: `spinesq ensures exactly one instance of the spines queue worker is
running inside a detached tmux session. Invoking it when the worker is
already up is a no-op; every invocation is recorded in the launch journal.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runUp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.spinesq/spinesq.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}
