package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"papertrade/internal/db/models/postgres/public/model"
	"papertrade/internal/db/models/postgres/public/table"
	"papertrade/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/shopspring/decimal"
)

// StockRepository maintains the reference-price cache. Prices here are the
// last price a trade executed at, not live market data.
type StockRepository interface {
	Get(symbol string) (*model.Stock, error)
	UpsertPrice(tx *sql.Tx, symbol string, price decimal.Decimal) (*model.Stock, error)
}

type stockRepositoryHandler struct {
	Db *sql.DB
}

func NewStockRepository(db *sql.DB) StockRepository {
	return stockRepositoryHandler{Db: db}
}

func (h stockRepositoryHandler) Get(symbol string) (*model.Stock, error) {
	query := table.Stock.
		SELECT(table.Stock.AllColumns).
		WHERE(table.Stock.Symbol.EQ(postgres.String(symbol)))

	out := model.Stock{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: stock %s", domain.ErrNotFound, symbol)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return &out, nil
}

func (h stockRepositoryHandler) UpsertPrice(tx *sql.Tx, symbol string, price decimal.Decimal) (*model.Stock, error) {
	query := table.Stock.
		INSERT(table.Stock.MutableColumns).
		MODEL(model.Stock{
			Symbol:         symbol,
			LastKnownPrice: price,
			UpdatedAt:      time.Now().UTC(),
		}).
		ON_CONFLICT(table.Stock.Symbol).DO_UPDATE(
		postgres.SET(
			table.Stock.LastKnownPrice.SET(table.Stock.EXCLUDED.LastKnownPrice),
			table.Stock.UpdatedAt.SET(table.Stock.EXCLUDED.UpdatedAt),
		),
	).RETURNING(table.Stock.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Stock{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert stock price: %w", err)
	}

	return &out, nil
}
