package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/crimson-sun/polyglot/internal/output"
)

func testRecord() output.Record {
	return output.Record{
		ID:         "3f1c2a9e-0000-4000-8000-000000000001",
		Input:      "Guten Morgen <Welt>",
		Language:   "de",
		Name:       "German",
		Confidence: 0.91,
		Rationale:  "agreement",
		Cosine:     &output.SubResult{Language: "de", Score: 0.88},
		Classifier: &output.SubResult{Language: "de", Score: 0.94},
	}
}

// captureStdout redirects os.Stdout to capture output.
func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestOutputCompactJSON(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Standard, false)
		out.Write(context.Background(), testRecord())
	})

	// Should be single line (NDJSON).
	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["language"] != "de" {
		t.Fatalf("expected language=de, got %v", m["language"])
	}
	if m["rationale"] != "agreement" {
		t.Fatalf("expected rationale=agreement, got %v", m["rationale"])
	}
	if !strings.Contains(lines[0], "<Welt>") {
		t.Fatalf("HTML characters should not be escaped: %s", lines[0])
	}
}

func TestOutputPrettyJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Standard, true)
	if err := out.Write(context.Background(), testRecord()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected multi-line pretty output, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Fatalf("expected indented output, got %q", lines[1])
	}
}

func TestOutputMinimalOmitsFields(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, output.Minimal, false)
	out.Write(context.Background(), testRecord())

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, key := range []string{"input", "cosine", "classifier", "top_cosine"} {
		if _, ok := m[key]; ok {
			t.Fatalf("%s should be omitted at Minimal", key)
		}
	}
	if m["confidence"] != 0.91 {
		t.Fatalf("confidence should be preserved, got %v", m["confidence"])
	}
}
