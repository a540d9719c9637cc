package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a live price from the quote provider.
type Quote struct {
	Symbol      string
	Price       decimal.Decimal
	DisplayName string
	AsOf        time.Time
}

// ReferencePrice is the cached last-known price for a symbol, upserted as a
// side effect of every trade. It is a fallback only - the quote provider is
// authoritative for valuation.
type ReferencePrice struct {
	Symbol         string
	LastKnownPrice decimal.Decimal
	UpdatedAt      time.Time
}
