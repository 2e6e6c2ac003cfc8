// Package cmd implements the newsroom CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "newsroom",
	Short: "Startup newsletter pipeline",
	Long: `Newsroom turns raw startup news into a validated newsletter document.

It collects funding announcements, events, and accelerator programs,
resolves the companies and people they mention into a canonical entity
registry, merges duplicate coverage, ranks each section, numbers
citations, and emits a single schema-validated JSON document.`,
	PersistentPreRunE: setupCommand,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./newsroom.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (warnings and errors only)")

	rootCmd.SetVersionTemplate("newsroom {{.Version}}\n")
	rootCmd.Version = Version
}

// initConfig loads .env files and binds flags to NEWSROOM_* environment
// variables. Flags take precedence over the environment.
func initConfig() {
	// .env.local overrides .env, so it loads first (Load never overwrites)
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	viper.SetEnvPrefix("newsroom")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

// setupCommand resolves global settings before any command runs. Values
// come through viper so NEWSROOM_CONFIG, NEWSROOM_VERBOSE, and
// NEWSROOM_QUIET work alongside the flags.
func setupCommand(_ *cobra.Command, _ []string) error {
	configFile = viper.GetString("config")

	switch {
	case viper.GetBool("verbose"):
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case viper.GetBool("quiet"):
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	return nil
}
