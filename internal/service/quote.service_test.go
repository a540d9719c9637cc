package service

import (
	"context"
	"fmt"
	"testing"

	"papertrade/internal/domain"
	"papertrade/internal/ledger"
	mock_repository "papertrade/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_GetQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the live quote when available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := ledger.NewMemoryStore()

		quoteRepository := mock_repository.NewMockQuoteRepository(ctrl)
		quoteRepository.EXPECT().
			GetQuote(gomock.Any(), "AAPL").
			Return(aaplQuote(170), nil)

		svc := NewQuoteService(store, quoteRepository)

		quote, err := svc.GetQuote(ctx, "AAPL")
		require.NoError(t, err)
		require.Equal(t, "Apple Inc.", quote.DisplayName)
		require.Equal(t, "170.00", quote.Price.StringFixed(2))
	})

	t.Run("falls back to the reference price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := ledger.NewMemoryStore()
		portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(10000))
		executeOrder(t, NewOrderService(store), portfolio.PortfolioID, "AAPL", domain.TradeSideBuy, 1, "150.00")

		quoteRepository := mock_repository.NewMockQuoteRepository(ctrl)
		quoteRepository.EXPECT().
			GetQuote(gomock.Any(), "AAPL").
			Return(nil, fmt.Errorf("%w: provider timed out", domain.ErrQuoteUnavailable))

		svc := NewQuoteService(store, quoteRepository)

		quote, err := svc.GetQuote(ctx, "AAPL")
		require.NoError(t, err)
		require.Equal(t, "150.00", quote.Price.StringFixed(2))
	})

	t.Run("fails when nothing is known about the symbol", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := ledger.NewMemoryStore()

		quoteRepository := mock_repository.NewMockQuoteRepository(ctrl)
		quoteRepository.EXPECT().
			GetQuote(gomock.Any(), "ZZZZ").
			Return(nil, fmt.Errorf("%w: unknown symbol", domain.ErrQuoteUnavailable))

		svc := NewQuoteService(store, quoteRepository)

		_, err := svc.GetQuote(ctx, "ZZZZ")
		require.ErrorIs(t, err, domain.ErrQuoteUnavailable)
	})
}
