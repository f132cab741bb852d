package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bankofanthos/investpipe/internal/domain"
	"github.com/bankofanthos/investpipe/internal/usecase"
)

// MockQueueRepository is a mock implementation of QueueRepository backed by an
// in-memory map, with per-method overrides.
type MockQueueRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.QueueEntry

	CreateFunc                 func(ctx context.Context, entry *domain.QueueEntry) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.QueueEntry, error)
	SelectPendingForUpdateFunc func(ctx context.Context, tx usecase.Transaction, limit int) ([]*domain.QueueEntry, error)
	MarkStatusTxFunc           func(ctx context.Context, tx usecase.Transaction, ids []string, status domain.QueueStatus, updatedAt time.Time) error
	MarkStatusFunc             func(ctx context.Context, ids []string, status domain.QueueStatus, updatedAt time.Time) error
	ListUpdatedSinceFunc       func(ctx context.Context, watermark time.Time) ([]*domain.QueueEntry, error)
	StatsFunc                  func(ctx context.Context) (*domain.QueueStats, error)
}

func NewMockQueueRepository() *MockQueueRepository {
	return &MockQueueRepository{
		entries: make(map[string]*domain.QueueEntry),
	}
}

func (m *MockQueueRepository) Create(ctx context.Context, entry *domain.QueueEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockQueueRepository) GetByID(ctx context.Context, id string) (*domain.QueueEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockQueueRepository) SelectPendingForUpdate(ctx context.Context, tx usecase.Transaction, limit int) ([]*domain.QueueEntry, error) {
	if m.SelectPendingForUpdateFunc != nil {
		return m.SelectPendingForUpdateFunc(ctx, tx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pending []*domain.QueueEntry
	for _, e := range m.entries {
		if e.Status == domain.QueueStatusPending && len(pending) < limit {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

func (m *MockQueueRepository) MarkStatusTx(ctx context.Context, tx usecase.Transaction, ids []string, status domain.QueueStatus, updatedAt time.Time) error {
	if m.MarkStatusTxFunc != nil {
		return m.MarkStatusTxFunc(ctx, tx, ids, status, updatedAt)
	}
	return m.MarkStatus(ctx, ids, status, updatedAt)
}

func (m *MockQueueRepository) MarkStatus(ctx context.Context, ids []string, status domain.QueueStatus, updatedAt time.Time) error {
	if m.MarkStatusFunc != nil {
		return m.MarkStatusFunc(ctx, ids, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if e, ok := m.entries[id]; ok {
			e.Status = status
			e.UpdatedAt = updatedAt
		}
	}
	return nil
}

func (m *MockQueueRepository) ListUpdatedSince(ctx context.Context, watermark time.Time) ([]*domain.QueueEntry, error) {
	if m.ListUpdatedSinceFunc != nil {
		return m.ListUpdatedSinceFunc(ctx, watermark)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var updated []*domain.QueueEntry
	for _, e := range m.entries {
		if e.Status != domain.QueueStatusPending && e.UpdatedAt.After(watermark) {
			updated = append(updated, e)
		}
	}
	return updated, nil
}

func (m *MockQueueRepository) Stats(ctx context.Context) (*domain.QueueStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.QueueStats{}
	for _, e := range m.entries {
		stats.Total++
		switch e.Status {
		case domain.QueueStatusPending:
			stats.Pending++
		case domain.QueueStatusProcessing:
			stats.Processing++
		case domain.QueueStatusDone:
			stats.Done++
		case domain.QueueStatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

// MockPortfolioRepository is a mock implementation of PortfolioRepository.
type MockPortfolioRepository struct {
	mu           sync.RWMutex
	portfolios   map[string]*domain.UserPortfolio
	transactions map[string]*domain.PortfolioTransaction

	GetPortfolioByAccountFunc      func(ctx context.Context, accountID string) (*domain.UserPortfolio, error)
	GetPortfolioForUpdateFunc      func(ctx context.Context, tx usecase.Transaction, id string) (*domain.UserPortfolio, error)
	GetTransactionByQueueEntryFunc func(ctx context.Context, tx usecase.Transaction, queueEntryID string) (*domain.PortfolioTransaction, error)
	CreateTransactionFunc          func(ctx context.Context, tx usecase.Transaction, txn *domain.PortfolioTransaction) error
	UpdateTransactionStatusFunc    func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	UpdatePortfolioValuesFunc      func(ctx context.Context, tx usecase.Transaction, portfolio *domain.UserPortfolio) error
	TransactionStatsFunc           func(ctx context.Context) (*domain.TransactionStats, error)
}

func NewMockPortfolioRepository() *MockPortfolioRepository {
	return &MockPortfolioRepository{
		portfolios:   make(map[string]*domain.UserPortfolio),
		transactions: make(map[string]*domain.PortfolioTransaction),
	}
}

// AddPortfolio seeds a portfolio for tests.
func (m *MockPortfolioRepository) AddPortfolio(p *domain.UserPortfolio) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portfolios[p.ID] = p
}

// TransactionByQueueEntry exposes a stored transaction for assertions.
func (m *MockPortfolioRepository) TransactionByQueueEntry(queueEntryID string) *domain.PortfolioTransaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.transactions {
		if txn.QueueEntryID == queueEntryID {
			return txn
		}
	}
	return nil
}

func (m *MockPortfolioRepository) GetPortfolioByAccount(ctx context.Context, accountID string) (*domain.UserPortfolio, error) {
	if m.GetPortfolioByAccountFunc != nil {
		return m.GetPortfolioByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.portfolios {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, domain.ErrPortfolioNotFound
}

func (m *MockPortfolioRepository) GetPortfolioForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.UserPortfolio, error) {
	if m.GetPortfolioForUpdateFunc != nil {
		return m.GetPortfolioForUpdateFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.portfolios[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPortfolioNotFound
}

func (m *MockPortfolioRepository) GetTransactionByQueueEntry(ctx context.Context, tx usecase.Transaction, queueEntryID string) (*domain.PortfolioTransaction, error) {
	if m.GetTransactionByQueueEntryFunc != nil {
		return m.GetTransactionByQueueEntryFunc(ctx, tx, queueEntryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.transactions {
		if txn.QueueEntryID == queueEntryID {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockPortfolioRepository) CreateTransaction(ctx context.Context, tx usecase.Transaction, txn *domain.PortfolioTransaction) error {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockPortfolioRepository) UpdateTransactionStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	if m.UpdateTransactionStatusFunc != nil {
		return m.UpdateTransactionStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn, ok := m.transactions[id]; ok {
		txn.Status = status
		txn.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockPortfolioRepository) UpdatePortfolioValues(ctx context.Context, tx usecase.Transaction, portfolio *domain.UserPortfolio) error {
	if m.UpdatePortfolioValuesFunc != nil {
		return m.UpdatePortfolioValuesFunc(ctx, tx, portfolio)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.portfolios[portfolio.ID] = portfolio
	return nil
}

func (m *MockPortfolioRepository) TransactionStats(ctx context.Context) (*domain.TransactionStats, error) {
	if m.TransactionStatsFunc != nil {
		return m.TransactionStatsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &domain.TransactionStats{}
	for _, txn := range m.transactions {
		stats.Total++
		switch txn.Type {
		case domain.TransactionTypeDeposit:
			stats.Deposits++
		case domain.TransactionTypeWithdrawal:
			stats.Withdrawals++
		}
		switch txn.Status {
		case domain.TransactionStatusPending:
			stats.Pending++
		case domain.TransactionStatusCompleted:
			stats.Completed++
		case domain.TransactionStatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator generates sequential test IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + strconv.Itoa(m.next)
}

// MockMarketSource returns a fixed market delta.
type MockMarketSource struct {
	DeltaFunc func() domain.MarketDelta
}

func (m *MockMarketSource) Delta() domain.MarketDelta {
	if m.DeltaFunc != nil {
		return m.DeltaFunc()
	}
	return domain.MarketDelta{}
}
