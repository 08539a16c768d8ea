package gazette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDuplicatesChars(t *testing.T) {
	t.Run("runs of letters", func(t *testing.T) {
		output := FindDuplicatesChars("aabbcc dd ee ffgghh")
		assert.Equal(t, []rune{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}, output)
	})

	t.Run("distinct and in order of first occurrence", func(t *testing.T) {
		assert.Equal(t, []rune{'s', '.'}, FindDuplicatesChars("passo.. isso"))
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.Empty(t, FindDuplicatesChars("aA bB"))
	})

	t.Run("no runs", func(t *testing.T) {
		assert.Empty(t, FindDuplicatesChars("abc"))
		assert.Empty(t, FindDuplicatesChars(""))
	})
}

func TestRemoveWordWithDuplicateLetters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "whitespace between words is preserved",
			input:    "CCRRIIAADDOO    MMEEDDIIAANNTTEE    OO    AARRTTIIGGOO",
			expected: "CRIADO    MEDIANTE    O    ARTIGO",
		},
		{
			name:     "single spaced",
			input:    "CCRRIIAADDOO MMEEDDIIAANNTTEE OO AARRTTIIGGOO",
			expected: "CRIADO MEDIANTE O ARTIGO",
		},
		{
			name:     "partially doubled words are untouched",
			input:    "PASSO ASSESSOR CCRRIIAADDOO, Manaus",
			expected: "PASSO ASSESSOR CCRRIIAADDOO, Manaus",
		},
		{
			name:     "doubled accented letters",
			input:    "AAÇÇÃÃOO",
			expected: "AÇÃO",
		},
		{
			name:     "digits are not letters",
			input:    "2200 1100",
			expected: "2200 1100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveWordWithDuplicateLetters(tt.input))
		})
	}
}

func TestRemoveWordWithDuplicateLetters_Idempotent(t *testing.T) {
	inputs := []string{"OOOO", "CCRRIIAADDOO", "texto normal"}
	for _, input := range inputs {
		once := RemoveWordWithDuplicateLetters(input)
		assert.Equal(t, once, RemoveWordWithDuplicateLetters(once), input)
	}
}
