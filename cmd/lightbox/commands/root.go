// Package commands implements the lightbox CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "lightbox",
	Short: "Lightbox - photo gallery browsing engine",
	Long: `Lightbox serves a photo gallery for browsing: it fetches the photo
manifest from an object store or HTTP endpoint, tracks the current
position, and keeps a direction-aware window of media prefetched around
it.

Use "lightbox [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
// Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/lightbox/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
