package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ResolvePositions(t *testing.T) {
	trades := []Trade{
		{Symbol: "AAPL", Side: TradeSideBuy, Quantity: 10},
		{Symbol: "MSFT", Side: TradeSideBuy, Quantity: 3},
		{Symbol: "AAPL", Side: TradeSideSell, Quantity: 4},
		{Symbol: "GOOG", Side: TradeSideBuy, Quantity: 5},
		{Symbol: "GOOG", Side: TradeSideSell, Quantity: 5},
	}

	require.Equal(t, "", cmp.Diff(
		[]Position{
			{Symbol: "AAPL", Quantity: 6},
			{Symbol: "MSFT", Quantity: 3},
		},
		ResolvePositions(trades),
	))
}

func Test_ResolvePositions_orderIndependent(t *testing.T) {
	forward := []Trade{
		{Symbol: "AAPL", Side: TradeSideBuy, Quantity: 10},
		{Symbol: "AAPL", Side: TradeSideSell, Quantity: 4},
		{Symbol: "AAPL", Side: TradeSideBuy, Quantity: 1},
	}
	reversed := []Trade{forward[2], forward[1], forward[0]}

	require.Equal(t, "", cmp.Diff(ResolvePositions(forward), ResolvePositions(reversed)))
}

func Test_Trade_CashDelta(t *testing.T) {
	buy := Trade{Symbol: "AAPL", Side: TradeSideBuy, Quantity: 10, PricePerShare: decimal.NewFromFloat(150)}
	require.Equal(t, "-1500.00", buy.CashDelta().StringFixed(2))

	sell := Trade{Symbol: "AAPL", Side: TradeSideSell, Quantity: 4, PricePerShare: decimal.NewFromFloat(160)}
	require.Equal(t, "640.00", sell.CashDelta().StringFixed(2))
}

func Test_ParseTradeSide(t *testing.T) {
	side, err := ParseTradeSide("BUY")
	require.NoError(t, err)
	require.Equal(t, TradeSideBuy, side)

	side, err = ParseTradeSide("SELL")
	require.NoError(t, err)
	require.Equal(t, TradeSideSell, side)

	_, err = ParseTradeSide("HOLD")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseTradeSide("buy")
	require.ErrorIs(t, err, ErrValidation)
}
