package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/polyglot/internal/evaluate"
	"github.com/crimson-sun/polyglot/internal/samples"
	"github.com/crimson-sun/polyglot/internal/setup"
)

var evalCmd = &cobra.Command{
	Use:   "eval [cases.json]",
	Short: "Measure accuracy on labelled sentences (default: bundled cases)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := loadCases(args)
		if err != nil {
			return err
		}

		eng, closer, err := setup.Engine(cmd.Context(), cfg, setup.Sources{Samples: useSamples})
		if err != nil {
			return err
		}
		defer closer.Close()

		report(cmd.OutOrStdout(), evaluate.Run(eng, cases))
		return nil
	},
}

func loadCases(args []string) ([]samples.Case, error) {
	if len(args) == 0 {
		return samples.Cases()
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return samples.ParseCases(data)
}

// report prints one row per case and the overall accuracy.
func report(w io.Writer, r evaluate.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXPECTED\tPREDICTED\tCONFIDENCE\tNOTE\tTEXT")
	for _, res := range r.Results {
		predicted := string(res.Predicted)
		if !res.Correct() {
			predicted = failColor.Sprint(predicted)
		}
		note := string(res.Rationale)
		if res.Err != nil {
			note = res.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", res.Expected, predicted, res.Confidence, note, clip(res.Text, 50))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nAccuracy: %d/%d (%.1f%%)\n", r.Correct, r.Total, 100*r.Accuracy())
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
