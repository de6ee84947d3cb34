package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"life_line": "deep and long"}`,
			want:  `{"life_line": "deep and long"}`,
		},
		{
			name:  "json fence",
			input: "Here you go:\n```json\n{\"life_line\": \"faint\"}\n```\nHope that helps!",
			want:  `{"life_line": "faint"}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"head_line\": \"straight\"}\n```",
			want:  `{"head_line": "straight"}`,
		},
		{
			name:  "object buried in prose",
			input: "Sure! The features are {\"fate_line\": \"broken\"} as requested.",
			want:  `{"fate_line": "broken"}`,
		},
		{
			name:  "nested object",
			input: `prefix {"a": {"b": "c"}} suffix`,
			want:  `{"a": {"b": "c"}}`,
		},
		{
			name:  "braces inside strings",
			input: `{"note": "shaped like a } hook"}`,
			want:  `{"note": "shaped like a } hook"}`,
		},
		{
			name:  "escaped quote inside string",
			input: `{"note": "a \" and a }"}`,
			want:  `{"note": "a \" and a }"}`,
		},
		{
			name:  "fence with prose falls back to brace scan",
			input: "```json\nnot json actually\n```\nbut later {\"x\": \"y\"} appears",
			want:  `{"x": "y"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, input := range []string{
		"",
		"no json here at all",
		"an open brace { but never closed",
		"```json\n```",
	} {
		_, err := ExtractJSON(input)
		assert.ErrorIs(t, err, ErrNoJSON, "input: %q", input)
	}
}
