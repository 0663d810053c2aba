package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/engine/profile"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build reference profiles from the corpus directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("top-k") {
			cfg.Profiles.TopK, _ = flags.GetInt("top-k")
		}
		if flags.Changed("jobs") {
			cfg.Profiles.Jobs, _ = flags.GetInt("jobs")
		}
		if flags.Changed("db") {
			cfg.Profiles.DB, _ = flags.GetString("db")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		docs, err := corpus.ReadDir(cfg.Corpus.Dir)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("no <code>.txt files in %s", cfg.Corpus.Dir)
		}

		profiles, err := profile.BuildAll(cmd.Context(), docs, cfg.Profiles.TopK, cfg.Profiles.Jobs)
		if err != nil {
			return err
		}
		if err := profile.SaveDir(cfg.Profiles.Dir, profiles); err != nil {
			return err
		}
		slog.Info("profiles written", "dir", cfg.Profiles.Dir, "languages", len(profiles), "top_k", cfg.Profiles.TopK)

		if cfg.Profiles.DB != "" {
			if err := profile.SaveSQLite(cmd.Context(), cfg.Profiles.DB, profiles); err != nil {
				return err
			}
			slog.Info("profiles written", "db", cfg.Profiles.DB)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().Int("top-k", 300, "trigrams kept per language (0 = all)")
	buildCmd.Flags().Int("jobs", 0, "parallel builders (0 = GOMAXPROCS)")
	buildCmd.Flags().String("db", "", "also write profiles to this SQLite database")
}
