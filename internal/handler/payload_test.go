package handler

import (
	"testing"

	"finbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.Kind
		category string
	}{
		{
			name:     "expense category",
			kind:     domain.KindExpense,
			category: "Еда",
		},
		{
			name:     "income category",
			kind:     domain.KindIncome,
			category: "Работа",
		},
		{
			name:     "category with underscores",
			kind:     domain.KindExpense,
			category: "Дом_и_быт",
		},
		{
			name:     "category with spaces",
			kind:     domain.KindExpense,
			category: "Кафе и рестораны",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := catPayload(tt.kind, tt.category)

			kind, category, err := parseCatPayload(payload)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestParseCatPayload_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing category", input: "cat_expense_"},
		{name: "missing kind and category", input: "cat_"},
		{name: "unknown kind", input: "cat_savings_Еда"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseCatPayload(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestDelPayloadRoundTrip(t *testing.T) {
	payload := delPayload(7, domain.KindExpense)
	assert.Equal(t, "del_7_expense", payload)

	row, kind, err := parseDelPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, 7, row)
	assert.Equal(t, domain.KindExpense, kind)
}

func TestConfirmDeletePayloadRoundTrip(t *testing.T) {
	payload := confirmDeletePayload(12, domain.KindIncome)
	assert.Equal(t, "confirm_delete_12_income", payload)

	row, kind, err := parseConfirmDeletePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, 12, row)
	assert.Equal(t, domain.KindIncome, kind)
}

func TestParseRowKind_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no separator", input: "5expense"},
		{name: "non-numeric row", input: "abc_expense"},
		{name: "zero row", input: "0_expense"},
		{name: "negative row", input: "-3_income"},
		{name: "unknown kind", input: "5_savings"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseRowKind(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		limit    int
		expected string
	}{
		{
			name:     "short label untouched",
			label:    "💸 15.06.2024 - Еда",
			limit:    50,
			expected: "💸 15.06.2024 - Еда",
		},
		{
			name:     "long label truncated with ellipsis",
			label:    "абвгдеёжзийклмн",
			limit:    10,
			expected: "абвгдеё...",
		},
		{
			name:     "exact limit untouched",
			label:    "абвгдеёжзи",
			limit:    10,
			expected: "абвгдеёжзи",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateLabel(tt.label, tt.limit))
		})
	}
}
