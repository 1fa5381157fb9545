package service

import (
	"sort"

	"finbot/internal/domain"
	"finbot/internal/ledger"

	"go.uber.org/zap"
)

// CategoryTotal is one line of the per-category statistics.
type CategoryTotal struct {
	Category string
	Total    float64
}

// Stats aggregates the whole ledger.
type Stats struct {
	TotalExpense float64
	TotalIncome  float64
	Balance      float64
	Count        int
	ByCategory   []CategoryTotal // sorted by total, descending
}

// TransactionService handles ledger operations on validated records.
type TransactionService struct {
	gateway ledger.Gateway
	logger  *zap.Logger
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(gateway ledger.Gateway, logger *zap.Logger) *TransactionService {
	return &TransactionService{gateway: gateway, logger: logger}
}

// Add persists the record in the ledger.
func (s *TransactionService) Add(tx *domain.Transaction) error {
	return s.gateway.Append(tx)
}

// Recent returns up to limit records from the combined ledger view, most
// recently appended first.
func (s *TransactionService) Recent(limit int) ([]domain.Transaction, error) {
	txs, err := s.gateway.List(domain.KindAny)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}

	// The listing is in sheet order, oldest first.
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
	return txs, nil
}

// Find locates a record by its row index and kind in the current ledger
// view; nil means the row holds no such record anymore.
func (s *TransactionService) Find(rowIndex int, kind domain.Kind) (*domain.Transaction, error) {
	txs, err := s.gateway.List(kind)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].RowIndex == rowIndex {
			return &txs[i], nil
		}
	}
	return nil, nil
}

// Delete clears the record's cells in the ledger.
func (s *TransactionService) Delete(rowIndex int, kind domain.Kind) error {
	return s.gateway.Delete(rowIndex, kind)
}

// GetStats aggregates totals, balance and per-category sums over the
// whole ledger.
func (s *TransactionService) GetStats() (*Stats, error) {
	txs, err := s.gateway.List(domain.KindAny)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Count: len(txs)}
	byCategory := make(map[string]float64)
	for _, tx := range txs {
		if tx.Kind == domain.KindIncome {
			stats.TotalIncome += tx.Amount
		} else {
			stats.TotalExpense += tx.Amount
		}
		byCategory[tx.Category] += tx.Amount
	}
	stats.Balance = stats.TotalIncome - stats.TotalExpense

	for category, total := range byCategory {
		stats.ByCategory = append(stats.ByCategory, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if stats.ByCategory[i].Total != stats.ByCategory[j].Total {
			return stats.ByCategory[i].Total > stats.ByCategory[j].Total
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	return stats, nil
}
