package testutil

import (
	"finbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock for ledger.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchCategories(kind domain.Kind) ([]string, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGateway) Append(tx *domain.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockGateway) List(filter domain.Kind) ([]domain.Transaction, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockGateway) Delete(rowIndex int, kind domain.Kind) error {
	args := m.Called(rowIndex, kind)
	return args.Error(0)
}
