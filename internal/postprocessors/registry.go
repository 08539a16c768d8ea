package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

// BuilderFunc creates a TextPass from pipeline settings.
type BuilderFunc func(cfg domain.PipelineSettings) (driven.TextPass, error)

// Registry maps pass names to their builders.
// It allows pipelines to be assembled from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new pass registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a pass builder to the registry.
// Name should be unique and match the pass's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a pass by name.
// Returns domain.ErrInvalidInput if the name is not registered.
func (r *Registry) Build(name string, cfg domain.PipelineSettings) (driven.TextPass, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown pass %q: %w", name, domain.ErrInvalidInput)
	}
	return builder(cfg)
}

// BuildPipeline builds every pass named in cfg.Passes, in that order.
func (r *Registry) BuildPipeline(cfg domain.PipelineSettings) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range cfg.Passes {
		pass, err := r.Build(name, cfg)
		if err != nil {
			return nil, err
		}
		p.Add(pass)
	}
	return p, nil
}

// Has returns true if a pass with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered pass names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
