package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
)

const (
	statsCacheKey = "stats:combined"
	statsCacheTTL = 5 * time.Second
)

// StatsUseCase aggregates counts from both stores. Results are served from
// the cache when present so the stats endpoint does not hammer either store.
type StatsUseCase struct {
	queueRepo     QueueRepository
	portfolioRepo PortfolioRepository
	cache         Cache
}

// NewStatsUseCase creates a new StatsUseCase. cache may be nil.
func NewStatsUseCase(queueRepo QueueRepository, portfolioRepo PortfolioRepository, cache Cache) *StatsUseCase {
	return &StatsUseCase{
		queueRepo:     queueRepo,
		portfolioRepo: portfolioRepo,
		cache:         cache,
	}
}

// CombinedStats holds counts from the queue and portfolio stores.
type CombinedStats struct {
	Queue        *domain.QueueStats       `json:"queue"`
	Transactions *domain.TransactionStats `json:"transactions"`
}

// Collect gathers stats from both stores.
func (uc *StatsUseCase) Collect(ctx context.Context) (*CombinedStats, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, statsCacheKey); err == nil {
			stats := &CombinedStats{}
			if err := json.Unmarshal([]byte(cached), stats); err == nil {
				return stats, nil
			}
		}
	}

	queueStats, err := uc.queueRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	txnStats, err := uc.portfolioRepo.TransactionStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CombinedStats{
		Queue:        queueStats,
		Transactions: txnStats,
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			// Cache write failures are non-fatal, next call recomputes.
			_ = uc.cache.Set(ctx, statsCacheKey, string(encoded), statsCacheTTL)
		}
	}

	return stats, nil
}
