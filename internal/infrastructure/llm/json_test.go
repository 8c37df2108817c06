package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "json fence", input: "```json\n[\"a\", \"b\"]\n```", expected: `["a", "b"]`},
		{name: "bare fence", input: "```\n{\"k\": 1}\n```", expected: `{"k": 1}`},
		{name: "single line json fence", input: "```json{\"k\": 1}```", expected: `{"k": 1}`},
		{name: "plain", input: "  {\"k\": 1}  ", expected: `{"k": 1}`},
		{name: "fence with content on first line", input: "```{\"k\": 1}\n```", expected: `{"k": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
