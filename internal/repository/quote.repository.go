package repository

import (
	"context"
	"fmt"
	"time"

	"papertrade/internal/domain"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// QuoteRepository is the live market-data dependency. It is network-bound
// and fallible; every failure surfaces as domain.ErrQuoteUnavailable so
// callers can decide whether to fall back to the reference-price cache.
type QuoteRepository interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}

type quoteRepositoryHandler struct {
	Timeout time.Duration
}

func NewQuoteRepository(timeout time.Duration) QuoteRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return quoteRepositoryHandler{Timeout: timeout}
}

func (h quoteRepositoryHandler) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	type result struct {
		quote *domain.Quote
		err   error
	}

	// the yahoo client has no context support, so bound it ourselves
	ch := make(chan result, 1)
	go func() {
		q, err := quote.Get(symbol)
		if err != nil {
			ch <- result{err: err}
			return
		}
		if q == nil {
			ch <- result{err: fmt.Errorf("no quote returned for %s", symbol)}
			return
		}
		ch <- result{quote: &domain.Quote{
			Symbol:      q.Symbol,
			Price:       decimal.NewFromFloat(q.RegularMarketPrice),
			DisplayName: q.ShortName,
			AsOf:        time.Unix(int64(q.RegularMarketTime), 0).UTC(),
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: quote lookup for %s: %s", domain.ErrQuoteUnavailable, symbol, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("%w: quote lookup for %s: %s", domain.ErrQuoteUnavailable, symbol, res.err)
		}
		return res.quote, nil
	}
}
