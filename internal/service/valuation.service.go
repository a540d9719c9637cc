package service

import (
	"context"

	"papertrade/internal/domain"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValuationService combines the cash balance, resolved positions and live
// quotes into a net-worth breakdown. Read-only and idempotent.
//
// Quote policy: the live provider is authoritative. If a symbol's live
// quote fails, valuation falls back to that symbol's reference price from
// the last trade; if there is no reference price either, the whole request
// fails with ErrQuoteUnavailable. Held symbols are never silently skipped,
// since that would understate net worth.
type ValuationService interface {
	CalcNetWorth(ctx context.Context, portfolioID uuid.UUID) (*domain.NetWorth, error)
}

type valuationServiceHandler struct {
	Ledger          ledger.Store
	QuoteRepository repository.QuoteRepository
	PositionService PositionService
}

func NewValuationService(store ledger.Store, quoteRepository repository.QuoteRepository, positionService PositionService) ValuationService {
	return valuationServiceHandler{
		Ledger:          store,
		QuoteRepository: quoteRepository,
		PositionService: positionService,
	}
}

func (h valuationServiceHandler) CalcNetWorth(ctx context.Context, portfolioID uuid.UUID) (*domain.NetWorth, error) {
	portfolio, err := h.Ledger.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	positions, err := h.PositionService.ResolvePositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	assetValue := decimal.Zero
	for _, position := range positions {
		price, err := h.priceFor(ctx, position.Symbol)
		if err != nil {
			return nil, err
		}
		assetValue = assetValue.Add(price.Mul(decimal.NewFromInt32(position.Quantity)))
	}

	return &domain.NetWorth{
		CashBalance: portfolio.CashBalance,
		AssetValue:  assetValue,
		NetWorth:    portfolio.CashBalance.Add(assetValue),
	}, nil
}

func (h valuationServiceHandler) priceFor(ctx context.Context, symbol string) (decimal.Decimal, error) {
	quote, err := h.QuoteRepository.GetQuote(ctx, symbol)
	if err == nil {
		return quote.Price, nil
	}

	referencePrice, refErr := h.Ledger.GetReferencePrice(ctx, symbol)
	if refErr != nil {
		// no live quote and no cached price - fail the whole request
		return decimal.Zero, err
	}

	logger.FromContext(ctx).Warnw("live quote failed, using reference price",
		"symbol", symbol,
		"referencePrice", referencePrice.LastKnownPrice,
		"error", err,
	)

	return referencePrice.LastKnownPrice, nil
}
