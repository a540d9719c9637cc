package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"papertrade/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore is an in-process Store adapter. It backs unit tests and the
// standalone demo mode; the postgres adapter in internal/repository is the
// production implementation.
type MemoryStore struct {
	mu         sync.RWMutex
	portfolios map[uuid.UUID]domain.Portfolio
	trades     map[uuid.UUID][]domain.Trade
	refPrices  map[string]domain.ReferencePrice

	// one lock per portfolio, held for the duration of a Transact call
	portfolioLocks map[uuid.UUID]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		portfolios:     map[uuid.UUID]domain.Portfolio{},
		trades:         map[uuid.UUID][]domain.Trade{},
		refPrices:      map[string]domain.ReferencePrice{},
		portfolioLocks: map[uuid.UUID]*sync.Mutex{},
	}
}

// CreatePortfolio registers a new portfolio with the given starting balance.
func (s *MemoryStore) CreatePortfolio(userID uuid.UUID, startingBalance decimal.Decimal) domain.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Portfolio{
		PortfolioID: uuid.New(),
		UserID:      userID,
		CashBalance: startingBalance,
		CreatedAt:   time.Now().UTC(),
	}
	s.portfolios[p.PortfolioID] = p
	s.portfolioLocks[p.PortfolioID] = &sync.Mutex{}

	return p
}

func (s *MemoryStore) GetPortfolio(_ context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[portfolioID]
	if !ok {
		return nil, fmt.Errorf("%w: portfolio %s", domain.ErrNotFound, portfolioID)
	}

	return &p, nil
}

func (s *MemoryStore) ListTrades(_ context.Context, portfolioID uuid.UUID) ([]domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]domain.Trade, len(s.trades[portfolioID]))
	copy(trades, s.trades[portfolioID])

	return trades, nil
}

func (s *MemoryStore) GetReferencePrice(_ context.Context, symbol string) (*domain.ReferencePrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rp, ok := s.refPrices[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: no reference price for %s", domain.ErrNotFound, symbol)
	}

	return &rp, nil
}

func (s *MemoryStore) Transact(ctx context.Context, portfolioID uuid.UUID, fn func(tx OrderTx) error) error {
	s.mu.RLock()
	lock, ok := s.portfolioLocks[portfolioID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: portfolio %s", domain.ErrNotFound, portfolioID)
	}

	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	snapshot := s.portfolios[portfolioID]
	s.mu.RUnlock()

	tx := &memoryOrderTx{store: s, portfolio: snapshot}
	if err := fn(tx); err != nil {
		return err
	}

	// all staged effects commit together under the store lock
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.newBalance != nil {
		snapshot.CashBalance = *tx.newBalance
		s.portfolios[portfolioID] = snapshot
	}
	s.trades[portfolioID] = append(s.trades[portfolioID], tx.stagedTrades...)
	for symbol, rp := range tx.stagedPrices {
		s.refPrices[symbol] = rp
	}

	return nil
}

type memoryOrderTx struct {
	store     *MemoryStore
	portfolio domain.Portfolio

	newBalance   *decimal.Decimal
	stagedTrades []domain.Trade
	stagedPrices map[string]domain.ReferencePrice
}

func (tx *memoryOrderTx) Portfolio() domain.Portfolio {
	return tx.portfolio
}

func (tx *memoryOrderTx) ListTrades() ([]domain.Trade, error) {
	trades, err := tx.store.ListTrades(context.Background(), tx.portfolio.PortfolioID)
	if err != nil {
		return nil, err
	}

	return append(trades, tx.stagedTrades...), nil
}

func (tx *memoryOrderTx) SetBalance(balance decimal.Decimal) error {
	tx.newBalance = &balance
	return nil
}

func (tx *memoryOrderTx) AppendTrade(trade domain.Trade) error {
	if trade.TradeID == uuid.Nil {
		trade.TradeID = uuid.New()
	}
	if trade.ExecutedAt.IsZero() {
		trade.ExecutedAt = time.Now().UTC()
	}
	tx.stagedTrades = append(tx.stagedTrades, trade)

	return nil
}

func (tx *memoryOrderTx) UpsertReferencePrice(symbol string, price decimal.Decimal) error {
	if tx.stagedPrices == nil {
		tx.stagedPrices = map[string]domain.ReferencePrice{}
	}
	tx.stagedPrices[symbol] = domain.ReferencePrice{
		Symbol:         symbol,
		LastKnownPrice: price,
		UpdatedAt:      time.Now().UTC(),
	}

	return nil
}
