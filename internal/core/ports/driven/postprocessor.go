package driven

import (
	"context"
	"iter"
)

// TextPass is one normalisation step over a whole text blob.
// Passes are pure: the same input always yields the same output.
type TextPass interface {
	// Name returns the pass name for logging and configuration.
	Name() string

	// Apply returns the transformed text.
	Apply(text string) string
}

// TextPipeline chains TextPasses in a fixed order.
type TextPipeline interface {
	// Process runs the text through all passes in order.
	// It only fails when the context is cancelled between passes.
	Process(ctx context.Context, text string) (string, error)

	// Names returns the pass names in execution order.
	Names() []string
}

// Segmenter splits text into sentences.
type Segmenter interface {
	// Segment returns a lazy, restartable sequence of trimmed, non-empty
	// sentences in input order. It holds no state between calls.
	Segment(text string) iter.Seq[string]
}
