// Package similarity scores a query trigram profile against reference
// profiles with cosine similarity.
package similarity

import (
	"math"

	"github.com/crimson-sun/polyglot/internal/engine/profile"
	"github.com/crimson-sun/polyglot/internal/model"
)

// Cosine returns the cosine similarity of two profiles: the dot product over
// shared trigrams divided by the product of their Euclidean norms. It is 0
// when either profile is empty or they share no trigram.
func Cosine(a, b model.Profile) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Iterate the smaller map; the result does not depend on which.
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	var dot float64
	shared := false
	for k, v := range small {
		if w, ok := large[k]; ok {
			dot += v * w
			shared = true
		}
	}
	if !shared {
		return 0
	}

	denom := math.Sqrt(sumSquares(a)) * math.Sqrt(sumSquares(b))
	if denom == 0 {
		return 0
	}
	return dot / denom
}

func sumSquares(p model.Profile) float64 {
	var s float64
	for _, v := range p {
		s += v * v
	}
	return s
}

// Score computes the cosine similarity of query against every profile in
// the store. Best is the language with the strictly highest score; ties
// (including an all-zero result for empty queries) go to the first language
// in the store's code order.
func Score(query model.Profile, store *profile.Store) model.SimilarityResult {
	res := model.SimilarityResult{
		Scores: make(map[model.LanguageCode]float64, store.Len()),
		Score:  -1,
	}
	store.Each(func(code model.LanguageCode, ref model.Profile) {
		sim := Cosine(query, ref)
		res.Scores[code] = sim
		if sim > res.Score {
			res.Best = code
			res.Score = sim
		}
	})
	if res.Score < 0 {
		res.Score = 0
	}
	return res
}
