package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal payload",
			input:    "add_expense",
			expected: "add_expense",
		},
		{
			name:     "payload with whitespace",
			input:    "  confirm_add  ",
			expected: "confirm_add",
		},
		{
			name:     "payload with newline",
			input:    "cat_expense_\nЕда",
			expected: "cat_expense_Еда",
		},
		{
			name:     "payload with unprintable characters",
			input:    "del_5_expense\x00\x01",
			expected: "del_5_expense",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}
