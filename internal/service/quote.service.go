package service

import (
	"context"

	"papertrade/internal/domain"
	"papertrade/internal/ledger"
	"papertrade/internal/repository"
)

// QuoteService backs the symbol-search surface. Same fallback policy as
// valuation: live provider first, reference price second.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}

type quoteServiceHandler struct {
	Ledger          ledger.Store
	QuoteRepository repository.QuoteRepository
}

func NewQuoteService(store ledger.Store, quoteRepository repository.QuoteRepository) QuoteService {
	return quoteServiceHandler{Ledger: store, QuoteRepository: quoteRepository}
}

func (h quoteServiceHandler) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, err := h.QuoteRepository.GetQuote(ctx, symbol)
	if err == nil {
		return quote, nil
	}

	referencePrice, refErr := h.Ledger.GetReferencePrice(ctx, symbol)
	if refErr != nil {
		return nil, err
	}

	return &domain.Quote{
		Symbol:      referencePrice.Symbol,
		Price:       referencePrice.LastKnownPrice,
		DisplayName: referencePrice.Symbol,
		AsOf:        referencePrice.UpdatedAt,
	}, nil
}
