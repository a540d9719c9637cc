package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// ParseTradeSide normalizes client input into a TradeSide.
func ParseTradeSide(s string) (TradeSide, error) {
	switch TradeSide(s) {
	case TradeSideBuy:
		return TradeSideBuy, nil
	case TradeSideSell:
		return TradeSideSell, nil
	}
	return "", fmt.Errorf("%w: unknown trade side %q", ErrValidation, s)
}

// Trade is one executed order. Trades are append-only: once written to the
// ledger they are never mutated or reordered.
type Trade struct {
	TradeID       uuid.UUID
	PortfolioID   uuid.UUID
	Symbol        string
	Side          TradeSide
	Quantity      int32
	PricePerShare decimal.Decimal
	ExecutedAt    time.Time
}

// CashDelta is the signed effect of the trade on the portfolio's cash
// balance: negative for a BUY, positive for a SELL.
func (t Trade) CashDelta() decimal.Decimal {
	notional := t.PricePerShare.Mul(decimal.NewFromInt32(t.Quantity))
	if t.Side == TradeSideBuy {
		return notional.Neg()
	}
	return notional
}

// SignedQuantity is +Quantity for a BUY and -Quantity for a SELL.
func (t Trade) SignedQuantity() int32 {
	if t.Side == TradeSideSell {
		return -t.Quantity
	}
	return t.Quantity
}
