package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio holds a user's simulated cash. Holdings are not stored here -
// they are derived from the trade ledger on demand.
type Portfolio struct {
	PortfolioID uuid.UUID
	UserID      uuid.UUID
	CashBalance decimal.Decimal
	CreatedAt   time.Time
}

// Position is the net quantity held of one symbol, derived from the ledger.
// Only strictly positive quantities are ever surfaced.
type Position struct {
	Symbol   string
	Quantity int32
}

// ResolvePositions folds a portfolio's trades into net per-symbol holdings.
// Order of trades does not matter since only the sums do. Symbols that net
// to zero (fully liquidated) or below are dropped.
func ResolvePositions(trades []Trade) []Position {
	net := map[string]int32{}
	for _, t := range trades {
		net[t.Symbol] += t.SignedQuantity()
	}

	positions := []Position{}
	for symbol, quantity := range net {
		if quantity > 0 {
			positions = append(positions, Position{Symbol: symbol, Quantity: quantity})
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})

	return positions
}

// NetWorth is the valuation breakdown for one portfolio.
type NetWorth struct {
	CashBalance decimal.Decimal
	AssetValue  decimal.Decimal
	NetWorth    decimal.Decimal
}
