package service

import (
	"context"

	"papertrade/internal/domain"
	"papertrade/internal/ledger"

	"github.com/google/uuid"
)

// PositionService derives current holdings by replaying the trade ledger.
// It is read-only and safe to call concurrently with in-flight orders; a
// momentarily stale snapshot is acceptable here.
type PositionService interface {
	ResolvePositions(ctx context.Context, portfolioID uuid.UUID) ([]domain.Position, error)
}

type positionServiceHandler struct {
	Ledger ledger.Store
}

func NewPositionService(store ledger.Store) PositionService {
	return positionServiceHandler{Ledger: store}
}

func (h positionServiceHandler) ResolvePositions(ctx context.Context, portfolioID uuid.UUID) ([]domain.Position, error) {
	if _, err := h.Ledger.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	trades, err := h.Ledger.ListTrades(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	return domain.ResolvePositions(trades), nil
}
