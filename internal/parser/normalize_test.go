package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []Record
		expected []Record
	}{
		{
			name: "deleted entry collapses to one row",
			input: []Record{
				{ID: "1.1.1.1 (deleted, see 1.1.1.2)", Field: "PROTEIN"},
				{ID: "1.1.1.1 (deleted, see 1.1.1.2)", Field: "REACTION"},
			},
			expected: []Record{
				{ID: "1.1.1.1", Field: TransferredDeleted, Description: "deleted, see 1.1.1.2"},
			},
		},
		{
			name: "empty comment is removed without synthesizing a row",
			input: []Record{
				{ID: "1.2.3.4 ()", Field: "PROTEIN", Description: "p\n"},
			},
			expected: []Record{
				{ID: "1.2.3.4", Field: "PROTEIN", Description: "p\n"},
			},
		},
		{
			name: "standard rows before annotated rows",
			input: []Record{
				{ID: "1.1.1.1", Field: "PROTEIN", Description: "a\n"},
				{ID: "1.1.1.2 (transferred to 1.1.1.5)", Field: "PROTEIN"},
				{ID: "1.1.1.3", Field: "REACTION", Description: "b\n"},
				{ID: "1.1.1.2 (transferred to 1.1.1.5)", Field: "REACTION"},
				{ID: "1.1.1.4 (deleted)", Field: "PROTEIN"},
			},
			expected: []Record{
				{ID: "1.1.1.1", Field: "PROTEIN", Description: "a\n"},
				{ID: "1.1.1.3", Field: "REACTION", Description: "b\n"},
				{ID: "1.1.1.2", Field: TransferredDeleted, Description: "transferred to 1.1.1.5"},
				{ID: "1.1.1.4", Field: TransferredDeleted, Description: "deleted"},
			},
		},
		{
			name: "incoming description is discarded",
			input: []Record{
				{ID: "2.7.1.1 (deleted)", Field: "SYNONYMS", Description: "kept nowhere\n"},
			},
			expected: []Record{
				{ID: "2.7.1.1", Field: TransferredDeleted, Description: "deleted"},
			},
		},
		{
			name: "multiple groups captured from the first parenthesis",
			input: []Record{
				{ID: "1.1.1.1 (a) (b)", Field: "PROTEIN"},
			},
			expected: []Record{
				{ID: "1.1.1.1", Field: TransferredDeleted, Description: "a) (b"},
			},
		},
		{
			name: "non trailing parenthesis yields empty comment",
			input: []Record{
				{ID: "1.1.1.1 (a) x", Field: "PROTEIN"},
			},
			expected: []Record{
				{ID: "1.1.1.1", Field: TransferredDeleted, Description: ""},
			},
		},
		{
			name: "comment without leading space",
			input: []Record{
				{ID: "1.1.1.1(deleted)", Field: "PROTEIN"},
			},
			expected: []Record{
				{ID: "1.1.1.1", Field: TransferredDeleted, Description: "deleted"},
			},
		},
		{
			name: "empty comment next to a real one",
			input: []Record{
				{ID: "1.1.1.1 () (deleted)", Field: "PROTEIN"},
				{ID: "1.1.1.1 (deleted)", Field: "REACTION"},
			},
			expected: []Record{
				{ID: "1.1.1.1", Field: TransferredDeleted, Description: "deleted"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := []Record{
		{ID: "1.1.1.1", Field: "PROTEIN", Description: "a\n"},
		{ID: "1.1.1.2 (deleted)", Field: "PROTEIN"},
		{ID: "1.1.1.3 ()", Field: "REACTION", Description: "b\n"},
	}

	once := Normalize(input)
	assert.Equal(t, once, Normalize(once))
}

func TestNormalizeOneRowPerAnnotatedID(t *testing.T) {
	input := []Record{
		{ID: "3.1.1.1 (transferred to 3.1.1.2)", Field: "PROTEIN"},
		{ID: "3.1.1.1 (transferred to 3.1.1.2)", Field: "REACTION"},
		{ID: "3.1.1.1 (transferred to 3.1.1.2)", Field: "SYNONYMS"},
		{ID: "3.1.1.9 (deleted)", Field: "PROTEIN"},
		{ID: "3.1.1.9 (deleted)", Field: "REFERENCE"},
	}

	counts := make(map[string]int)
	for _, rec := range Normalize(input) {
		assert.Equal(t, TransferredDeleted, rec.Field)
		counts[rec.ID]++
	}
	assert.Equal(t, map[string]int{"3.1.1.1": 1, "3.1.1.9": 1}, counts)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	input := []Record{
		{ID: "1.1.1.1 ()", Field: "PROTEIN"},
		{ID: "1.1.1.2 (deleted)", Field: "PROTEIN"},
	}
	snapshot := append([]Record(nil), input...)

	Normalize(input)
	assert.Equal(t, snapshot, input)
}
