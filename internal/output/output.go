// Package output defines where detection records go and how much of each
// record is kept.
package output

import (
	"context"

	"github.com/google/uuid"

	"github.com/crimson-sun/polyglot/internal/model"
)

// Output defines the interface for detection record destinations.
type Output interface {
	Write(ctx context.Context, rec Record) error
	Close() error
}

// SubResult is one model's pick and its score.
type SubResult struct {
	Language model.LanguageCode `json:"language"`
	Score    float64            `json:"score"`
}

// Record is the serialized form of one detection decision.
type Record struct {
	ID         string             `json:"id"`
	Input      string             `json:"input,omitempty"`
	Language   model.LanguageCode `json:"language"`
	Name       string             `json:"name"`
	Confidence float64            `json:"confidence"`
	Rationale  model.Rationale    `json:"rationale"`
	Cosine     *SubResult         `json:"cosine,omitempty"`
	Classifier *SubResult         `json:"classifier,omitempty"`
	TopCosine  []model.Score      `json:"top_cosine,omitempty"`
}

// TopN is the number of cosine scores kept in a record.
const TopN = 3

// FromDecision builds a record with a fresh ID. names resolves display
// names; unknown codes become "Unknown".
func FromDecision(input string, d model.Decision, names model.Languages) Record {
	top := d.Similarity.Ranked()
	if len(top) > TopN {
		top = top[:TopN]
	}
	return Record{
		ID:         uuid.NewString(),
		Input:      input,
		Language:   d.Language,
		Name:       names.Name(d.Language),
		Confidence: d.Confidence,
		Rationale:  d.Rationale,
		Cosine:     &SubResult{Language: d.Similarity.Best, Score: d.Similarity.Score},
		Classifier: &SubResult{Language: d.Classifier.Predicted, Score: d.Classifier.Probability()},
		TopCosine:  top,
	}
}
