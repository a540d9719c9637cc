package ledger

import (
	"context"
	"errors"
	"testing"

	"papertrade/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore_Transact(t *testing.T) {
	ctx := context.Background()

	t.Run("staged effects commit together", func(t *testing.T) {
		store := NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(1000))

		err := store.Transact(ctx, portfolio.PortfolioID, func(tx OrderTx) error {
			require.Equal(t, "1000", tx.Portfolio().CashBalance.String())
			if err := tx.SetBalance(decimal.NewFromInt(850)); err != nil {
				return err
			}
			if err := tx.AppendTrade(domain.Trade{
				PortfolioID:   portfolio.PortfolioID,
				Symbol:        "AAPL",
				Side:          domain.TradeSideBuy,
				Quantity:      1,
				PricePerShare: decimal.NewFromInt(150),
			}); err != nil {
				return err
			}
			return tx.UpsertReferencePrice("AAPL", decimal.NewFromInt(150))
		})
		require.NoError(t, err)

		updated, err := store.GetPortfolio(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Equal(t, "850", updated.CashBalance.String())

		trades, err := store.ListTrades(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Len(t, trades, 1)
		require.NotEqual(t, uuid.Nil, trades[0].TradeID)
		require.False(t, trades[0].ExecutedAt.IsZero())

		rp, err := store.GetReferencePrice(ctx, "AAPL")
		require.NoError(t, err)
		require.Equal(t, "150", rp.LastKnownPrice.String())
	})

	t.Run("a failing callback leaves no visible effect", func(t *testing.T) {
		store := NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(1000))

		sentinel := errors.New("boom")
		err := store.Transact(ctx, portfolio.PortfolioID, func(tx OrderTx) error {
			if err := tx.SetBalance(decimal.Zero); err != nil {
				return err
			}
			if err := tx.AppendTrade(domain.Trade{Symbol: "AAPL", Side: domain.TradeSideBuy, Quantity: 1}); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		updated, err := store.GetPortfolio(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Equal(t, "1000", updated.CashBalance.String())

		trades, err := store.ListTrades(ctx, portfolio.PortfolioID)
		require.NoError(t, err)
		require.Len(t, trades, 0)

		_, err = store.GetReferencePrice(ctx, "AAPL")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("staged trades are visible inside the transaction", func(t *testing.T) {
		store := NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(1000))

		err := store.Transact(ctx, portfolio.PortfolioID, func(tx OrderTx) error {
			if err := tx.AppendTrade(domain.Trade{
				PortfolioID: portfolio.PortfolioID,
				Symbol:      "AAPL",
				Side:        domain.TradeSideBuy,
				Quantity:    2,
			}); err != nil {
				return err
			}

			trades, err := tx.ListTrades()
			if err != nil {
				return err
			}
			require.Len(t, trades, 1)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("unknown portfolio is not found", func(t *testing.T) {
		store := NewMemoryStore()

		err := store.Transact(ctx, uuid.New(), func(tx OrderTx) error { return nil })
		require.ErrorIs(t, err, domain.ErrNotFound)

		_, err = store.GetPortfolio(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
