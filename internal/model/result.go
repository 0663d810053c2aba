package model

import "sort"

// Score pairs a language with a similarity score or probability.
type Score struct {
	Language LanguageCode `json:"language"`
	Score    float64      `json:"score"`
}

// SimilarityResult is the outcome of scoring one query profile against every
// reference profile.
type SimilarityResult struct {
	Best   LanguageCode
	Score  float64
	Scores map[LanguageCode]float64
}

// Ranked returns all scores sorted descending, ties in code order.
func (r SimilarityResult) Ranked() []Score {
	return rank(r.Scores)
}

// ClassifierResult is the prediction of the statistical classifier.
type ClassifierResult struct {
	Predicted    LanguageCode
	Distribution map[LanguageCode]float64
}

// Probability returns the probability assigned to the predicted language,
// or 0 when the distribution omits it.
func (r ClassifierResult) Probability() float64 {
	return r.Distribution[r.Predicted]
}

// Ranked returns the distribution sorted descending, ties in code order.
func (r ClassifierResult) Ranked() []Score {
	return rank(r.Distribution)
}

// Rationale explains how the ensemble reached its decision.
type Rationale string

const (
	Agreement    Rationale = "agreement"
	CosineChosen Rationale = "disagreement, cosine chosen"
	BayesChosen  Rationale = "disagreement, bayes chosen"
)

// Decision is the final output of one detection request.
type Decision struct {
	Language   LanguageCode
	Confidence float64
	Rationale  Rationale
	Similarity SimilarityResult
	Classifier ClassifierResult
}

func rank(m map[LanguageCode]float64) []Score {
	out := make([]Score, 0, len(m))
	for code, s := range m {
		out = append(out, Score{Language: code, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Language < out[j].Language
	})
	return out
}
