package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
	"github.com/bankofanthos/investpipe/internal/usecase/mocks"
)

// fakeCache is an in-memory usecase.Cache.
type fakeCache struct {
	values map[string]string
	misses int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	c.misses++
	return "", errNotFound
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

var errNotFound = errors.New("cache miss")

func TestStatsUseCase_Collect(t *testing.T) {
	queueRepo := mocks.NewMockQueueRepository()
	portfolioRepo := mocks.NewMockPortfolioRepository()

	queueCalls := 0
	queueRepo.StatsFunc = func(ctx context.Context) (*domain.QueueStats, error) {
		queueCalls++
		return &domain.QueueStats{Total: 4, Pending: 1, Done: 3}, nil
	}
	portfolioRepo.TransactionStatsFunc = func(ctx context.Context) (*domain.TransactionStats, error) {
		return &domain.TransactionStats{Total: 3, Completed: 3}, nil
	}

	uc := usecase.NewStatsUseCase(queueRepo, portfolioRepo, newFakeCache())

	stats, err := uc.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Queue.Total != 4 || stats.Transactions.Total != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// Second call is served from the cache.
	if _, err := uc.Collect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queueCalls != 1 {
		t.Fatalf("expected 1 store hit, got %d", queueCalls)
	}
}

func TestStatsUseCase_CollectWithoutCache(t *testing.T) {
	queueRepo := mocks.NewMockQueueRepository()
	portfolioRepo := mocks.NewMockPortfolioRepository()

	uc := usecase.NewStatsUseCase(queueRepo, portfolioRepo, nil)

	stats, err := uc.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Queue.Total != 0 || stats.Transactions.Total != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
