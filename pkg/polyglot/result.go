package polyglot

import "github.com/crimson-sun/polyglot/internal/model"

// Score pairs a language code with a similarity score or probability.
type Score struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// Result is the stable public form of one detection decision.
type Result struct {
	Language   string  `json:"language"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	// Rationale is "agreement", "disagreement, cosine chosen" or
	// "disagreement, bayes chosen".
	Rationale  string  `json:"rationale"`
	Cosine     Score   `json:"cosine"`
	Classifier Score   `json:"classifier"`
	// Scores holds every cosine score, highest first.
	Scores []Score `json:"scores,omitempty"`
}

func resultFromDecision(d model.Decision, names model.Languages) Result {
	return Result{
		Language:   string(d.Language),
		Name:       names.Name(d.Language),
		Confidence: d.Confidence,
		Rationale:  string(d.Rationale),
		Cosine:     Score{Language: string(d.Similarity.Best), Score: d.Similarity.Score},
		Classifier: Score{Language: string(d.Classifier.Predicted), Score: d.Classifier.Probability()},
		Scores:     scores(d.Similarity.Ranked()),
	}
}

func scores(in []model.Score) []Score {
	out := make([]Score, len(in))
	for i, s := range in {
		out[i] = Score{Language: string(s.Language), Score: s.Score}
	}
	return out
}
