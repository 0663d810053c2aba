package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/output"
	"github.com/crimson-sun/polyglot/internal/output/file"
	"github.com/crimson-sun/polyglot/internal/output/multi"
	"github.com/crimson-sun/polyglot/internal/output/stdout"
	"github.com/crimson-sun/polyglot/internal/pipeline"
	"github.com/crimson-sun/polyglot/internal/setup"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Detect every line of a file (or stdin) and write JSON records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("output") {
			cfg.Output.File, _ = flags.GetString("output")
		}
		if flags.Changed("pretty") {
			cfg.Output.Pretty, _ = flags.GetBool("pretty")
		}
		if flags.Changed("verbosity") {
			cfg.Output.Verbosity, _ = flags.GetString("verbosity")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		out, err := openOutput(cmd.OutOrStdout(), cfg.Output.File)
		if err != nil {
			return err
		}

		eng, closer, err := setup.Engine(cmd.Context(), cfg, setup.Sources{Samples: useSamples})
		if err != nil {
			out.Close()
			return err
		}
		defer closer.Close()

		p := pipeline.New(eng, out, model.DefaultLanguages())
		defer p.Close()

		stats, err := p.Run(cmd.Context(), in)
		slog.Info("batch done", "lines", stats.Lines, "written", stats.Written)
		return err
	},
}

// openOutput writes to w, and also to path when set.
func openOutput(w io.Writer, path string) (output.Output, error) {
	v, err := output.ParseVerbosity(cfg.Output.Verbosity)
	if err != nil {
		return nil, err
	}
	std := stdout.NewWriter(w, v, cfg.Output.Pretty)
	if path == "" {
		return std, nil
	}
	f, err := file.New(path, v, file.WithMaxSize(cfg.Output.MaxSize))
	if err != nil {
		return nil, err
	}
	return multi.New(std, f), nil
}

func init() {
	batchCmd.Flags().StringP("output", "o", "", "also append NDJSON records to this file")
	batchCmd.Flags().Bool("pretty", false, "indent stdout JSON")
	batchCmd.Flags().String("verbosity", "standard", "record detail (minimal|standard|full)")
}
