package api

import (
	"fmt"
	"testing"

	"papertrade/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_statusFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: missing symbol", domain.ErrValidation), 400},
		{fmt.Errorf("%w: balance too low", domain.ErrInsufficientFunds), 400},
		{fmt.Errorf("%w: holding 6", domain.ErrInsufficientHoldings), 400},
		{fmt.Errorf("%w: portfolio x", domain.ErrNotFound), 404},
		{fmt.Errorf("%w: retry", domain.ErrConcurrencyConflict), 409},
		{fmt.Errorf("%w: provider down", domain.ErrQuoteUnavailable), 502},
		{fmt.Errorf("%w: db down", domain.ErrStoreUnavailable), 503},
		{fmt.Errorf("something else"), 500},
	}

	for _, tc := range cases {
		require.Equal(t, tc.code, statusFromError(tc.err), "error: %v", tc.err)
	}
}
