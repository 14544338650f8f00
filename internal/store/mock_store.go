package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mockify/internal/resume"
	"mockify/internal/stats"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) LoadStats(ctx context.Context) (stats.CumulativeStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(stats.CumulativeStats), args.Error(1)
}

func (m *MockStore) SaveStats(ctx context.Context, s stats.CumulativeStats) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStore) LoadHistory(ctx context.Context) (resume.History, error) {
	args := m.Called(ctx)
	return args.Get(0).(resume.History), args.Error(1)
}

func (m *MockStore) SaveHistory(ctx context.Context, h resume.History) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockStore) ClearHistory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
