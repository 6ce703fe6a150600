package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Insulin Glargine", "insulin glargine"},
		{"collapses whitespace", "  Amoxicillin   500mg ", "amoxicillin 500mg"},
		{"strips diacritics", "Amoxicïllin", "amoxicillin"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Insulin Glargine 100IU", "insulin"))
	assert.True(t, ContainsFold("Paracetamol", "PARA"))
	assert.False(t, ContainsFold("Paracetamol", "insulin"))
	// Blank queries never match anything
	assert.False(t, ContainsFold("Paracetamol", ""))
	assert.False(t, ContainsFold("Paracetamol", "   "))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Insulin", "insulin"))
	assert.True(t, EqualFold(" Insulin ", "INSULIN"))
	assert.False(t, EqualFold("Insulin", "Insulin Glargine"))
}
