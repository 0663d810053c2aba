// Package evaluate measures detection accuracy over labelled sentences.
package evaluate

import (
	"log/slog"

	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/samples"
)

// Failed is the prediction recorded when detection returns an error.
const Failed model.LanguageCode = "ERR"

// Detector is the part of the engine evaluation needs.
type Detector interface {
	Detect(text string) (model.Decision, error)
}

// Result is the outcome of one case.
type Result struct {
	Text       string
	Expected   model.LanguageCode
	Predicted  model.LanguageCode
	Confidence float64
	Rationale  model.Rationale
	Err        error
}

// Correct reports whether the prediction matches the label.
func (r Result) Correct() bool {
	return r.Err == nil && r.Predicted == r.Expected
}

// Report aggregates all case results.
type Report struct {
	Results []Result
	Correct int
	Total   int
}

// Accuracy is Correct/Total, or 0 for an empty report.
func (r Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Run detects every case. Detection errors count as wrong answers with
// prediction Failed and do not stop the run.
func Run(det Detector, cases []samples.Case) Report {
	rep := Report{Results: make([]Result, 0, len(cases)), Total: len(cases)}
	for _, c := range cases {
		res := Result{Text: c.Text, Expected: c.Expected}
		d, err := det.Detect(c.Text)
		if err != nil {
			slog.Warn("detection failed", "text", c.Text, "error", err)
			res.Predicted = Failed
			res.Err = err
		} else {
			res.Predicted = d.Language
			res.Confidence = d.Confidence
			res.Rationale = d.Rationale
		}
		if res.Correct() {
			rep.Correct++
		}
		rep.Results = append(rep.Results, res)
	}
	return rep
}
