package postprocessors

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("upper", func(domain.PipelineSettings) (driven.TextPass, error) {
		return NewFunc("upper", strings.ToUpper), nil
	})

	if !r.Has("upper") {
		t.Error("expected 'upper' to be registered")
	}
	if r.Has("lower") {
		t.Error("did not expect 'lower' to be registered")
	}
}

func TestRegistry_Build_Unknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("missing", domain.PipelineSettings{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegistry_Names_Sorted(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	names := r.Names()
	if len(names) != len(domain.DefaultPasses()) {
		t.Fatalf("expected %d passes, got %d", len(domain.DefaultPasses()), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, name := range domain.DefaultPasses() {
		if !r.Has(name) {
			t.Errorf("default pass %q not registered", name)
		}
	}
}

func TestNewDefaultPipeline(t *testing.T) {
	cfg := domain.DefaultAppSettings().Pipeline

	p, err := NewDefaultPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(p.Names(), domain.DefaultPasses()) {
		t.Errorf("unexpected pass order: %v", p.Names())
	}
}

func TestNewDefaultPipeline_UnknownPass(t *testing.T) {
	cfg := domain.DefaultAppSettings().Pipeline
	cfg.Passes = append(cfg.Passes, "spellcheck")

	if _, err := NewDefaultPipeline(cfg); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDefaultPipeline_Process(t *testing.T) {
	p, err := NewDefaultPipeline(domain.DefaultAppSettings().Pipeline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := "Art. 1.º   O  CCRRIIAADDOO  “cargo”.\n\n\n\n§ 2.º Fica.......... revogado.\n"
	want := "O CRIADO \"cargo\".\nFica revogado.\n"

	out, err := p.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	again, err := p.Process(context.Background(), out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != out {
		t.Errorf("pipeline is not a fixed point: %q -> %q", out, again)
	}
}

func TestDefaultPipeline_CustomQuoteMarks(t *testing.T) {
	cfg := domain.DefaultAppSettings().Pipeline
	cfg.Passes = []string{domain.PassSpecialQuotes}
	cfg.QuoteMarks = []string{"???"}

	p, err := NewDefaultPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, _ := p.Process(context.Background(), "???deliberações.???")
	if out != `"deliberações."` {
		t.Errorf("unexpected output %q", out)
	}
}
