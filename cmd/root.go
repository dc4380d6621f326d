package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "session",
	Short: "Track work sessions per project and keep context between them",
	Long: `session tracks bounded work sessions per project and preserves
"what was done / what to do next" context across interruptions:
  - one active session per project, enforced
  - append-only session history
  - an immutable context snapshot on every session end
  - PROJECT.md always reflecting the latest snapshot

Optional integrations (git, test runner, GitHub issues) enrich
snapshots when available and silently stay out of the way when not.`,
	SilenceUsage: true,
}

// Execute runs the root command, printing errors to stderr and exiting
// non-zero on any failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/session/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "session")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Set defaults
	viper.SetDefault("storage.root", filepath.Join(home, ".session-manager"))
	viper.SetDefault("integrations.enabled", true)
	viper.SetDefault("integrations.timeout_seconds", 10)
	viper.SetDefault("issues.limit", 5)
	viper.SetDefault("history.default_limit", 10)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
