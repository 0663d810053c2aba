// Package pipeline runs line-oriented batch detection: every non-blank line
// of a reader is detected and written to an output as one record.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/output"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 4 * 1024 * 1024

// Detector is the part of the engine the pipeline needs.
type Detector interface {
	Detect(text string) (model.Decision, error)
}

// Stats summarizes one run.
type Stats struct {
	Lines   int // non-blank lines read
	Written int // records written
}

// Pipeline connects a detector and an output.
type Pipeline struct {
	detector Detector
	output   output.Output
	names    model.Languages
}

// New creates a Pipeline. names resolves display names in records.
func New(det Detector, out output.Output, names model.Languages) *Pipeline {
	return &Pipeline{detector: det, output: out, names: names}
}

// Run detects every non-blank line of r. It stops at the first detection or
// output error, or when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		d, err := p.detector.Detect(line)
		if err != nil {
			return stats, fmt.Errorf("pipeline detect line %d: %w", stats.Lines, err)
		}
		if err := p.output.Write(ctx, output.FromDecision(line, d, p.names)); err != nil {
			return stats, fmt.Errorf("pipeline output: %w", err)
		}
		stats.Written++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("pipeline read: %w", err)
	}

	slog.Debug("batch complete", "lines", stats.Lines, "written", stats.Written)
	return stats, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
