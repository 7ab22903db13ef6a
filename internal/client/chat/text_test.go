package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "plain text", expected: "plain text"},
		{input: "<b>bold?</b>", expected: "<b>bold?</b>"},
		{input: "Добро пожаловать", expected: "Добро пожаловать"},
		{input: "\x1b[31mred\x1b[0m", expected: "�[31mred�[0m"},
		{input: "two\nlines", expected: "two�lines"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, Printable(tt.input))
	}
}
