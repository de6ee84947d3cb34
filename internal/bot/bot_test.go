package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		input     string
		cmd       string
		args      []string
		isCommand bool
	}{
		{"/card", "card", nil, true},
		{"/CARD", "card", nil, true},
		{"  /journey  ", "journey", nil, true},
		{"!help", "help", nil, true},
		{"/card@ArcanaBot", "card", nil, true},
		{"/login secret pass", "login", []string{"secret", "pass"}, true},
		{"hello there", "", nil, false},
		{"", "", nil, false},
		{"/", "", nil, false},
		{"!   ", "", nil, false},
	}

	for _, tt := range tests {
		cmd, args, isCommand := p.ParseCommand(tt.input)
		assert.Equal(t, tt.isCommand, isCommand, "input: %q", tt.input)
		assert.Equal(t, tt.cmd, cmd, "input: %q", tt.input)
		assert.Equal(t, tt.args, args, "input: %q", tt.input)
	}
}
