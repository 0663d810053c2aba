package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/output"
)

var (
	languageColor = color.New(color.FgGreen, color.Bold)
	agreeColor    = color.New(color.FgGreen)
	disagreeColor = color.New(color.FgYellow)
	labelColor    = color.New(color.Faint)
	failColor     = color.New(color.FgRed, color.Bold)
)

// render prints a decision for humans.
func render(w io.Writer, r output.Record) {
	labelColor.Fprint(w, "Language:   ")
	languageColor.Fprintf(w, "%s (%s)\n", r.Name, r.Language)
	labelColor.Fprint(w, "Confidence: ")
	fmt.Fprintf(w, "%.2f\n", r.Confidence)
	if r.Cosine != nil {
		labelColor.Fprint(w, "Cosine:     ")
		fmt.Fprintf(w, "%s %.4f\n", r.Cosine.Language, r.Cosine.Score)
	}
	if r.Classifier != nil {
		labelColor.Fprint(w, "Classifier: ")
		fmt.Fprintf(w, "%s %.4f\n", r.Classifier.Language, r.Classifier.Score)
	}
	labelColor.Fprint(w, "Note:       ")
	if r.Rationale == model.Agreement {
		agreeColor.Fprintln(w, r.Rationale)
	} else {
		disagreeColor.Fprintln(w, r.Rationale)
	}
	if len(r.TopCosine) > 0 {
		top := make([]string, len(r.TopCosine))
		for i, s := range r.TopCosine {
			top[i] = fmt.Sprintf("%s %.4f", s.Language, s.Score)
		}
		labelColor.Fprint(w, "Top cosine: ")
		fmt.Fprintln(w, strings.Join(top, ", "))
	}
}
