package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/polyglot/internal/config"
	"github.com/crimson-sun/polyglot/internal/logging"
)

var (
	configPath string
	logLevel   string
	logJSON    bool
	useSamples bool

	// cfg is loaded once in the root PersistentPreRunE.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "polyglot",
	Short: "Identify the language of short texts",
	Long: `polyglot combines character trigram cosine similarity with a
statistical classifier to identify the natural language of a text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		logging.Init(logJSON, logging.ParseLevel(cfg.LogLevel))
		return nil
	},
}

func main() {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evalCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "polyglot.toml", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&useSamples, "samples", false, "use the bundled sample corpus instead of configured profiles and model")

	// Set up graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
