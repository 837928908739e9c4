// arscenario generates and validates multi-frame AR billing scenarios.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"arscenario/internal/config"
)

var (
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arscenario",
	Short: "AR billing scenario generator and validator",
	Long: `arscenario generates realistic Accounts Receivable billing scenarios
with an LLM, validates them against the domain's structural, temporal,
financial, and state-machine rules, and drives repair loops until a
scenario passes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if cfg.Logging.Format == "console" {
			zc = zap.NewDevelopmentConfig()
		}
		if level, lerr := zapcore.ParseLevel(cfg.Logging.Level); lerr == nil {
			zc.Level = zap.NewAtomicLevelAt(level)
		}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if cfg.Logging.File != "" {
			zc.OutputPaths = []string{cfg.Logging.File}
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "arscenario.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd, validateCmd, repairCmd, rulesCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
