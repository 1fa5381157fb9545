package testutil

import (
	"finbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestTransaction creates a persisted-looking test record
func NewTestTransaction(kind domain.Kind, rowIndex int, amount float64, category string) domain.Transaction {
	return domain.Transaction{
		Kind:        kind,
		Date:        "15.06.2024",
		Amount:      amount,
		Description: domain.NoDescription,
		Category:    category,
		RowIndex:    rowIndex,
	}
}
