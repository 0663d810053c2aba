// Package ensemble combines the cosine similarity and statistical classifier
// predictions into one decision.
package ensemble

import "github.com/crimson-sun/polyglot/internal/model"

// Arbitrate applies the decision rule:
//
//  1. Both models pick the same language: confidence is the mean of the
//     cosine score and the classifier's probability for it ("agreement").
//  2. Otherwise the pick with the strictly greater score wins and keeps its
//     own score as confidence.
//  3. An exact tie in rule 2 goes to cosine.
func Arbitrate(sim model.SimilarityResult, cls model.ClassifierResult) model.Decision {
	d := model.Decision{Similarity: sim, Classifier: cls}

	prob := cls.Probability()
	switch {
	case sim.Best == cls.Predicted:
		d.Language = sim.Best
		d.Confidence = (sim.Score + prob) / 2
		d.Rationale = model.Agreement
	case prob > sim.Score:
		d.Language = cls.Predicted
		d.Confidence = prob
		d.Rationale = model.BayesChosen
	default:
		d.Language = sim.Best
		d.Confidence = sim.Score
		d.Rationale = model.CosineChosen
	}
	return d
}
