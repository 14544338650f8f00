package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"mockify/internal/resume"
)

// MockCache is a mock implementation of Cache using testify/mock.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetReport(ctx context.Context, key string) (*resume.ATSReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resume.ATSReport), args.Error(1)
}

func (m *MockCache) SetReport(ctx context.Context, key string, report *resume.ATSReport, ttl time.Duration) error {
	args := m.Called(ctx, key, report, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
