package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/output"
)

// mockOutput records calls for test assertions.
type mockOutput struct {
	records []output.Record
	closed  bool
	err     error
}

func (m *mockOutput) Write(_ context.Context, rec output.Record) error {
	m.records = append(m.records, rec)
	return m.err
}

func (m *mockOutput) Close() error {
	m.closed = true
	return m.err
}

func testRecord(lang string) output.Record {
	return output.Record{ID: "id-" + lang, Language: "xx", Name: lang, Confidence: 0.5}
}

func TestFanOutDeliversToAll(t *testing.T) {
	a, b, c := &mockOutput{}, &mockOutput{}, &mockOutput{}
	m := New(a, b, c)

	require.NoError(t, m.Write(context.Background(), testRecord("Spanish")))
	for i, out := range []*mockOutput{a, b, c} {
		require.Len(t, out.records, 1, "output %d", i)
		assert.Equal(t, "Spanish", out.records[0].Name, "output %d", i)
	}
}

func TestErrorDoesNotPreventDelivery(t *testing.T) {
	diskFull := errors.New("disk full")
	failing := &mockOutput{err: diskFull}
	healthy := &mockOutput{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), testRecord("English"))
	assert.ErrorIs(t, err, diskFull)
	assert.Len(t, healthy.records, 1)
	assert.Len(t, failing.records, 1)
}

func TestCloseCollectsErrors(t *testing.T) {
	errA, errB := errors.New("err-a"), errors.New("err-b")
	a := &mockOutput{err: errA}
	b := &mockOutput{err: errB}

	err := New(a, b).Close()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestEmpty(t *testing.T) {
	m := New()
	assert.NoError(t, m.Write(context.Background(), testRecord("German")))
	assert.NoError(t, m.Close())
}
