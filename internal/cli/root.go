// Package cli implements the weft command.
//
// Configuration follows the usual precedence: command-line flags win over
// WEFT_-prefixed environment variables (WEFT_SERVE_PORT and friends), which
// win over the weft.yaml config file, which wins over built-in defaults.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/weftml/weft/internal/config"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Compile .weft templates to type-safe Go",
	Long: `weft compiles components written in the weft markup language into Go
source files that render HTML with context-sensitive escaping.

Quick start:
  weft init                 Set up weft.yaml and a starter component
  weft generate             Compile every .weft file in the project
  weft serve                Watch, regenerate, and live-reload a dev server`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(logLevel),
		}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default weft.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
