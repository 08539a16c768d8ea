package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

type fixedExtractor struct {
	exts      []string
	fragments []string
}

func (f *fixedExtractor) SupportedExtensions() []string { return f.exts }
func (f *fixedExtractor) Extract(context.Context, []byte) ([]string, error) {
	return f.fragments, nil
}

func TestDefaultRegistry_Extract(t *testing.T) {
	r := NewDefaultRegistry()
	ctx := context.Background()

	t.Run("xml", func(t *testing.T) {
		got, err := r.Extract(ctx, "data/files/abc.XML", []byte("<doc><p>Olá</p></doc>"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Olá"}, got)
	})

	t.Run("plain text", func(t *testing.T) {
		got, err := r.Extract(ctx, "a.txt", []byte("um\n\ndois"))
		require.NoError(t, err)
		assert.Equal(t, []string{"um", "dois"}, got)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := r.Extract(ctx, "a.pdf", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(&fixedExtractor{exts: []string{".xml"}, fragments: []string{"fixed"}})

	got, err := r.Extract(context.Background(), "a.xml", []byte("<p>x</p>"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fixed"}, got)
}
