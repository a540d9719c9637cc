package repository

import (
	"database/sql"
	"fmt"
	"time"

	"papertrade/internal/db/models/postgres/public/model"
	"papertrade/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

// TradeRepository appends to and reads the trade ledger. Trades are
// immutable once written; there is no update or delete.
type TradeRepository interface {
	Add(tx *sql.Tx, t model.Trade) (*model.Trade, error)
	List(tx *sql.Tx, portfolioID uuid.UUID) ([]model.Trade, error)
}

type tradeRepositoryHandler struct {
	Db *sql.DB
}

func NewTradeRepository(db *sql.DB) TradeRepository {
	return tradeRepositoryHandler{Db: db}
}

func (h tradeRepositoryHandler) Add(tx *sql.Tx, t model.Trade) (*model.Trade, error) {
	if t.ExecutedAt.IsZero() {
		t.ExecutedAt = time.Now().UTC()
	}
	query := table.Trade.
		INSERT(table.Trade.MutableColumns).
		MODEL(t).
		RETURNING(table.Trade.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Trade{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trade: %w", err)
	}

	return &out, nil
}

func (h tradeRepositoryHandler) List(tx *sql.Tx, portfolioID uuid.UUID) ([]model.Trade, error) {
	query := table.Trade.
		SELECT(table.Trade.AllColumns).
		WHERE(table.Trade.PortfolioID.EQ(postgres.UUID(portfolioID))).
		ORDER_BY(table.Trade.ExecutedAt.ASC())

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := []model.Trade{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	return out, nil
}
