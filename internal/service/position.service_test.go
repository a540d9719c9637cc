package service

import (
	"context"
	"testing"

	"papertrade/internal/domain"
	"papertrade/internal/ledger"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func appendTrade(t *testing.T, store *ledger.MemoryStore, portfolioID uuid.UUID, symbol string, side domain.TradeSide, quantity int32) {
	t.Helper()
	err := store.Transact(context.Background(), portfolioID, func(tx ledger.OrderTx) error {
		return tx.AppendTrade(domain.Trade{
			PortfolioID:   portfolioID,
			Symbol:        symbol,
			Side:          side,
			Quantity:      quantity,
			PricePerShare: decimal.NewFromInt(100),
		})
	})
	require.NoError(t, err)
}

func Test_ResolvePositions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ledger resolves to no positions", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(10000))
		svc := NewPositionService(store)

		positions, err := svc.ResolvePositions(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Len(t, positions, 0)
	})

	t.Run("buys and sells net per symbol", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(10000))
		svc := NewPositionService(store)

		appendTrade(t, store, portfolio.PortfolioID, "AAPL", domain.TradeSideBuy, 10)
		appendTrade(t, store, portfolio.PortfolioID, "MSFT", domain.TradeSideBuy, 3)
		appendTrade(t, store, portfolio.PortfolioID, "AAPL", domain.TradeSideSell, 4)

		positions, err := svc.ResolvePositions(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(
			[]domain.Position{
				{Symbol: "AAPL", Quantity: 6},
				{Symbol: "MSFT", Quantity: 3},
			},
			positions,
		))
	})

	t.Run("fully liquidated symbols are omitted, not returned as zero", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(10000))
		svc := NewPositionService(store)

		appendTrade(t, store, portfolio.PortfolioID, "AAPL", domain.TradeSideBuy, 5)
		appendTrade(t, store, portfolio.PortfolioID, "AAPL", domain.TradeSideSell, 5)
		appendTrade(t, store, portfolio.PortfolioID, "MSFT", domain.TradeSideBuy, 1)

		positions, err := svc.ResolvePositions(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(
			[]domain.Position{{Symbol: "MSFT", Quantity: 1}},
			positions,
		))

		for _, p := range positions {
			require.Greater(t, p.Quantity, int32(0))
		}
	})

	t.Run("unknown portfolio is not found", func(t *testing.T) {
		store := ledger.NewMemoryStore()
		svc := NewPositionService(store)

		_, err := svc.ResolvePositions(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
