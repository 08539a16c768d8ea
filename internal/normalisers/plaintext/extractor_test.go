package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".txt", ".text"}, New().SupportedExtensions())
}

func TestExtract(t *testing.T) {
	raw := []byte("  DIÁRIO OFICIAL \r\n\n\t\nArt. 1.º Fica criado.\n")

	got, err := New().Extract(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"DIÁRIO OFICIAL", "Art. 1.º Fica criado."}, got)
}

func TestExtract_Empty(t *testing.T) {
	got, err := New().Extract(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}
