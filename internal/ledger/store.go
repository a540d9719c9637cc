package ledger

import (
	"context"

	"papertrade/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the durable record of trades plus per-portfolio cash balances.
// Reads may observe a snapshot that is momentarily stale relative to an
// in-flight order; mutations only happen inside Transact.
type Store interface {
	GetPortfolio(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error)
	ListTrades(ctx context.Context, portfolioID uuid.UUID) ([]domain.Trade, error)
	GetReferencePrice(ctx context.Context, symbol string) (*domain.ReferencePrice, error)

	// Transact locks the portfolio for the duration of fn and applies every
	// mutation staged through OrderTx atomically iff fn returns nil. Orders
	// against the same portfolio are serialized here; this is the system's
	// one critical section.
	Transact(ctx context.Context, portfolioID uuid.UUID, fn func(tx OrderTx) error) error
}

// OrderTx is the unit of work handed to a Transact callback. The portfolio
// it exposes is locked against concurrent orders until Transact returns.
type OrderTx interface {
	Portfolio() domain.Portfolio
	ListTrades() ([]domain.Trade, error)

	SetBalance(balance decimal.Decimal) error
	AppendTrade(trade domain.Trade) error
	UpsertReferencePrice(symbol string, price decimal.Decimal) error
}
