package evaluate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/samples"
)

// prefixDetector predicts the text's first word as the language code.
type prefixDetector struct{}

func (prefixDetector) Detect(text string) (model.Decision, error) {
	if strings.HasPrefix(text, "!") {
		return model.Decision{}, errors.New("boom")
	}
	return model.Decision{
		Language:   model.LanguageCode(strings.Fields(text)[0]),
		Confidence: 0.6,
		Rationale:  model.CosineChosen,
	}, nil
}

func TestRun(t *testing.T) {
	cases := []samples.Case{
		{Text: "en one", Expected: "en"},
		{Text: "fr two", Expected: "es"},
		{Text: "! three", Expected: "de"},
		{Text: "it four", Expected: "it"},
	}

	rep := Run(prefixDetector{}, cases)
	assert.Equal(t, 4, rep.Total)
	assert.Equal(t, 2, rep.Correct)
	assert.InDelta(t, 0.5, rep.Accuracy(), 1e-12)

	require.Len(t, rep.Results, 4)
	assert.True(t, rep.Results[0].Correct())
	assert.Equal(t, model.LanguageCode("fr"), rep.Results[1].Predicted)
	assert.Equal(t, Failed, rep.Results[2].Predicted)
	assert.Error(t, rep.Results[2].Err)
	assert.False(t, rep.Results[2].Correct())
	assert.Equal(t, model.CosineChosen, rep.Results[3].Rationale)
}

func TestRunEmpty(t *testing.T) {
	rep := Run(prefixDetector{}, nil)
	assert.Zero(t, rep.Total)
	assert.Zero(t, rep.Accuracy())
}
