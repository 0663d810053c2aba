package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/polyglot/internal/setup"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the Naive Bayes model from the corpus directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("alpha") {
			cfg.Classifier.Alpha, _ = flags.GetFloat64("alpha")
		}
		if flags.Changed("out") {
			cfg.Classifier.ModelPath, _ = flags.GetString("out")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		m, err := setup.Train(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := m.Save(cfg.Classifier.ModelPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "trained %d languages, %d trigrams -> %s\n",
			len(m.Classes()), m.VocabularySize(), cfg.Classifier.ModelPath)
		return nil
	},
}

func init() {
	trainCmd.Flags().Float64("alpha", 1.0, "additive smoothing")
	trainCmd.Flags().String("out", "", "model file (default from config)")
}
