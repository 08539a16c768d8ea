package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		change   ChangeType
		expected string
	}{
		{ChangeCreated, "created"},
		{ChangeUpdated, "updated"},
		{ChangeDeleted, "deleted"},
		{ChangeType(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.change.String())
		})
	}
}

func TestSentenceSet_Len(t *testing.T) {
	assert.Equal(t, 0, SentenceSet{}.Len())
	assert.Equal(t, 2, SentenceSet{Sentences: []string{"a.", "b."}}.Len())
}
