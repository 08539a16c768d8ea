// Package postprocessors composes normalisation passes into pipelines.
package postprocessors

import (
	"context"

	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.TextPipeline = (*Pipeline)(nil)

// Pipeline chains multiple TextPasses and runs them in order.
type Pipeline struct {
	passes []driven.TextPass
}

// NewPipeline creates a new pipeline with the given passes.
// Passes are executed in the order provided.
func NewPipeline(passes ...driven.TextPass) *Pipeline {
	return &Pipeline{
		passes: passes,
	}
}

// Process runs the text through all passes in order.
// Cancellation is checked between passes.
func (p *Pipeline) Process(ctx context.Context, text string) (string, error) {
	for _, pass := range p.passes {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text = pass.Apply(text)
	}
	return text, nil
}

// Add appends a pass to the pipeline.
func (p *Pipeline) Add(pass driven.TextPass) {
	p.passes = append(p.passes, pass)
}

// Len returns the number of passes in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.passes)
}

// Names returns the pass names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}
