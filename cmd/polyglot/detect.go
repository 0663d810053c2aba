package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/polyglot/internal/engine"
	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/output"
	"github.com/crimson-sun/polyglot/internal/setup"
)

var detectCmd = &cobra.Command{
	Use:   "detect [text...]",
	Short: "Detect the language of text, or of each line typed interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closer, err := setup.Engine(cmd.Context(), cfg, setup.Sources{Samples: useSamples})
		if err != nil {
			return err
		}
		defer closer.Close()

		names := model.DefaultLanguages()
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			return detectOne(eng, names, out, strings.Join(args, " "))
		}
		return interactive(eng, names, cmd.InOrStdin(), out)
	},
}

func detectOne(eng *engine.Engine, names model.Languages, w io.Writer, text string) error {
	d, err := eng.Detect(text)
	if err != nil {
		return err
	}
	render(w, output.FromDecision(text, d, names))
	return nil
}

// interactive reads one text per line until EOF or "exit" (any case). Detection errors
// are reported and the loop continues.
func interactive(eng *engine.Engine, names model.Languages, r io.Reader, w io.Writer) error {
	fmt.Fprintln(w, `Enter text to identify, "exit" to quit.`)
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return nil
		}
		if err := detectOne(eng, names, w, line); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}
