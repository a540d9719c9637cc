package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"papertrade/internal/db/models/postgres/public/model"
	"papertrade/internal/domain"
	"papertrade/internal/ledger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// postgresLedger is the production ledger.Store adapter. Per-portfolio
// serialization comes from the FOR UPDATE row lock taken at the start of
// every Transact; all staged mutations share one sql transaction, so an
// order's balance change, trade row and reference-price upsert commit or
// roll back together.
type postgresLedger struct {
	Db                  *sql.DB
	PortfolioRepository PortfolioRepository
	TradeRepository     TradeRepository
	StockRepository     StockRepository
}

func NewPostgresLedger(
	db *sql.DB,
	portfolioRepository PortfolioRepository,
	tradeRepository TradeRepository,
	stockRepository StockRepository,
) ledger.Store {
	return postgresLedger{
		Db:                  db,
		PortfolioRepository: portfolioRepository,
		TradeRepository:     tradeRepository,
		StockRepository:     stockRepository,
	}
}

func (l postgresLedger) GetPortfolio(_ context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	p, err := l.PortfolioRepository.Get(portfolioID)
	if err != nil {
		return nil, err
	}

	out := portfolioFromModel(*p)
	return &out, nil
}

func (l postgresLedger) ListTrades(_ context.Context, portfolioID uuid.UUID) ([]domain.Trade, error) {
	trades, err := l.TradeRepository.List(nil, portfolioID)
	if err != nil {
		return nil, err
	}

	return tradesFromModels(trades), nil
}

func (l postgresLedger) GetReferencePrice(_ context.Context, symbol string) (*domain.ReferencePrice, error) {
	s, err := l.StockRepository.Get(symbol)
	if err != nil {
		return nil, err
	}

	return &domain.ReferencePrice{
		Symbol:         s.Symbol,
		LastKnownPrice: s.LastKnownPrice,
		UpdatedAt:      s.UpdatedAt,
	}, nil
}

func (l postgresLedger) Transact(ctx context.Context, portfolioID uuid.UUID, fn func(tx ledger.OrderTx) error) error {
	tx, err := l.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %s", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	p, err := l.PortfolioRepository.GetForUpdate(tx, portfolioID)
	if err != nil {
		return classifyPgError(err)
	}

	orderTx := &postgresOrderTx{ledger: l, tx: tx, portfolio: portfolioFromModel(*p)}
	if err := fn(orderTx); err != nil {
		return classifyPgError(err)
	}

	if err := tx.Commit(); err != nil {
		return classifyPgError(fmt.Errorf("failed to commit order: %w", err))
	}

	return nil
}

type postgresOrderTx struct {
	ledger    postgresLedger
	tx        *sql.Tx
	portfolio domain.Portfolio
}

func (t *postgresOrderTx) Portfolio() domain.Portfolio {
	return t.portfolio
}

func (t *postgresOrderTx) ListTrades() ([]domain.Trade, error) {
	trades, err := t.ledger.TradeRepository.List(t.tx, t.portfolio.PortfolioID)
	if err != nil {
		return nil, err
	}

	return tradesFromModels(trades), nil
}

func (t *postgresOrderTx) SetBalance(balance decimal.Decimal) error {
	_, err := t.ledger.PortfolioRepository.UpdateCashBalance(t.tx, t.portfolio.PortfolioID, balance)
	return err
}

func (t *postgresOrderTx) AppendTrade(trade domain.Trade) error {
	_, err := t.ledger.TradeRepository.Add(t.tx, model.Trade{
		PortfolioID:   trade.PortfolioID,
		Symbol:        trade.Symbol,
		Side:          model.TradeSide(trade.Side),
		Quantity:      trade.Quantity,
		PricePerShare: trade.PricePerShare,
		ExecutedAt:    trade.ExecutedAt,
	})
	return err
}

func (t *postgresOrderTx) UpsertReferencePrice(symbol string, price decimal.Decimal) error {
	_, err := t.ledger.StockRepository.UpsertPrice(t.tx, symbol, price)
	return err
}

// classifyPgError maps lock contention onto the retryable conflict error.
// Everything else passes through untouched so domain sentinels survive.
func classifyPgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03": // serialization failure, deadlock, lock not available
			return fmt.Errorf("%w: %s", domain.ErrConcurrencyConflict, err)
		case "08000", "08003", "08006": // connection failures
			return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, err)
	}

	return err
}

func portfolioFromModel(p model.Portfolio) domain.Portfolio {
	return domain.Portfolio{
		PortfolioID: p.PortfolioID,
		UserID:      p.UserID,
		CashBalance: p.CashBalance,
		CreatedAt:   p.CreatedAt,
	}
}

func tradesFromModels(trades []model.Trade) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		out = append(out, domain.Trade{
			TradeID:       t.TradeID,
			PortfolioID:   t.PortfolioID,
			Symbol:        t.Symbol,
			Side:          domain.TradeSide(t.Side),
			Quantity:      t.Quantity,
			PricePerShare: t.PricePerShare,
			ExecutedAt:    t.ExecutedAt,
		})
	}

	return out
}
