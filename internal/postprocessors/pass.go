package postprocessors

import "github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"

// Ensure Func implements the interface.
var _ driven.TextPass = Func{}

// Func adapts a plain string function into a named TextPass.
type Func struct {
	name string
	fn   func(string) string
}

// NewFunc creates a pass from fn.
func NewFunc(name string, fn func(string) string) Func {
	return Func{name: name, fn: fn}
}

// Name returns the pass name.
func (f Func) Name() string {
	return f.name
}

// Apply runs the wrapped function.
func (f Func) Apply(text string) string {
	return f.fn(text)
}
