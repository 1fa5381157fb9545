package service

import (
	"fmt"

	"finbot/internal/cache"
	"finbot/internal/domain"
	"finbot/internal/ledger"

	"go.uber.org/zap"
)

// RefreshResult reports what a forced category refresh loaded.
type RefreshResult struct {
	ExpenseCount int
	IncomeCount  int
	Total        int
}

// CategoryService serves category lists, shielding the spreadsheet behind
// the time-boxed file cache.
type CategoryService struct {
	gateway ledger.Gateway
	cache   *cache.Manager
	logger  *zap.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(gateway ledger.Gateway, cache *cache.Manager, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

// Categories returns the category names for a kind. A valid cache entry
// containing the kind wins; otherwise both kinds are refetched from the
// spreadsheet and the cache is overwritten in one piece.
func (s *CategoryService) Categories(kind domain.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	if cached := s.cache.Load(); cached != nil {
		if names, ok := cached[kind]; ok {
			return names, nil
		}
	}

	s.logger.Info("Category cache miss, fetching from spreadsheet",
		zap.String("kind", string(kind)),
	)

	all, err := s.fetchAll()
	if err != nil {
		return nil, err
	}

	// A failed cache write degrades to fetching again next time.
	if err := s.cache.Save(all); err != nil {
		s.logger.Warn("Failed to save category cache", zap.Error(err))
	}

	return all[kind], nil
}

// Refresh unconditionally clears the cache and repopulates it from the
// spreadsheet. On fetch failure the cache stays cleared, never partially
// written.
func (s *CategoryService) Refresh() (*RefreshResult, error) {
	if err := s.cache.Clear(); err != nil {
		s.logger.Warn("Failed to clear category cache before refresh", zap.Error(err))
	}

	all, err := s.fetchAll()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(all); err != nil {
		return nil, err
	}

	result := &RefreshResult{
		ExpenseCount: len(all[domain.KindExpense]),
		IncomeCount:  len(all[domain.KindIncome]),
	}
	result.Total = result.ExpenseCount + result.IncomeCount

	s.logger.Info("Category cache refreshed",
		zap.Int("expense_count", result.ExpenseCount),
		zap.Int("income_count", result.IncomeCount),
	)
	return result, nil
}

// CacheInfo describes the cache file state for the management menu.
func (s *CategoryService) CacheInfo() cache.Info {
	return s.cache.GetInfo()
}

// ClearCache deletes the cache file; idempotent.
func (s *CategoryService) ClearCache() error {
	return s.cache.Clear()
}

// Ping probes the spreadsheet connection with a cheap summary read.
func (s *CategoryService) Ping() error {
	_, err := s.gateway.FetchCategories(domain.KindExpense)
	return err
}

// fetchAll fetches both kinds; either failure fails the whole fetch so
// the cache is never half-populated.
func (s *CategoryService) fetchAll() (map[domain.Kind][]string, error) {
	expenses, err := s.gateway.FetchCategories(domain.KindExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expense categories: %w", err)
	}
	income, err := s.gateway.FetchCategories(domain.KindIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch income categories: %w", err)
	}
	return map[domain.Kind][]string{
		domain.KindExpense: expenses,
		domain.KindIncome:  income,
	}, nil
}
