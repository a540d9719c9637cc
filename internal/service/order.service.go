package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"papertrade/internal/domain"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	ExecuteOrder(ctx context.Context, input ExecuteOrderInput) (*ExecuteOrderResult, error)
}

type ExecuteOrderInput struct {
	PortfolioID   uuid.UUID
	Symbol        string
	Side          domain.TradeSide
	Quantity      int32
	PricePerShare decimal.Decimal
}

type ExecuteOrderResult struct {
	NewBalance decimal.Decimal
	Trade      domain.Trade
}

type orderServiceHandler struct {
	Ledger ledger.Store
}

func NewOrderService(store ledger.Store) OrderService {
	return orderServiceHandler{Ledger: store}
}

// ExecuteOrder applies one BUY or SELL as a single atomic unit: the balance
// check, balance mutation, ledger append and reference-price upsert either
// all commit or none do. The ledger serializes orders per portfolio, so two
// concurrent buys can never both pass the funds check against a stale
// balance.
func (h orderServiceHandler) ExecuteOrder(ctx context.Context, input ExecuteOrderInput) (*ExecuteOrderResult, error) {
	if err := validateOrder(input); err != nil {
		return nil, err
	}

	notional := input.PricePerShare.Mul(decimal.NewFromInt32(input.Quantity))

	var out ExecuteOrderResult
	err := h.Ledger.Transact(ctx, input.PortfolioID, func(tx ledger.OrderTx) error {
		portfolio := tx.Portfolio()

		var newBalance decimal.Decimal
		switch input.Side {
		case domain.TradeSideBuy:
			if portfolio.CashBalance.LessThan(notional) {
				return fmt.Errorf("%w: balance %s is less than cost %s",
					domain.ErrInsufficientFunds, portfolio.CashBalance, notional)
			}
			newBalance = portfolio.CashBalance.Sub(notional)
		case domain.TradeSideSell:
			trades, err := tx.ListTrades()
			if err != nil {
				return err
			}
			held := heldQuantity(domain.ResolvePositions(trades), input.Symbol)
			if held == 0 {
				return fmt.Errorf("%w: no position in %s", domain.ErrNotFound, input.Symbol)
			}
			if held < input.Quantity {
				return fmt.Errorf("%w: holding %d shares of %s, cannot sell %d",
					domain.ErrInsufficientHoldings, held, input.Symbol, input.Quantity)
			}
			newBalance = portfolio.CashBalance.Add(notional)
		}

		trade := domain.Trade{
			PortfolioID:   input.PortfolioID,
			Symbol:        input.Symbol,
			Side:          input.Side,
			Quantity:      input.Quantity,
			PricePerShare: input.PricePerShare,
			ExecutedAt:    time.Now().UTC(),
		}

		if err := tx.SetBalance(newBalance); err != nil {
			return err
		}
		if err := tx.AppendTrade(trade); err != nil {
			return err
		}
		if err := tx.UpsertReferencePrice(input.Symbol, input.PricePerShare); err != nil {
			return err
		}

		out = ExecuteOrderResult{NewBalance: newBalance, Trade: trade}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infow("executed order",
		"portfolioID", input.PortfolioID,
		"symbol", input.Symbol,
		"side", input.Side,
		"quantity", input.Quantity,
		"newBalance", out.NewBalance,
	)

	return &out, nil
}

func validateOrder(input ExecuteOrderInput) error {
	if input.PortfolioID == uuid.Nil {
		return fmt.Errorf("%w: missing portfolio id", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Symbol) == "" {
		return fmt.Errorf("%w: missing symbol", domain.ErrValidation)
	}
	if input.Side != domain.TradeSideBuy && input.Side != domain.TradeSideSell {
		return fmt.Errorf("%w: unknown trade side %q", domain.ErrValidation, input.Side)
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrValidation, input.Quantity)
	}
	if !input.PricePerShare.IsPositive() {
		return fmt.Errorf("%w: price per share must be positive, got %s", domain.ErrValidation, input.PricePerShare)
	}

	return nil
}

func heldQuantity(positions []domain.Position, symbol string) int32 {
	for _, p := range positions {
		if p.Symbol == symbol {
			return p.Quantity
		}
	}
	return 0
}
