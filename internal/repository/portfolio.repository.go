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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PortfolioRepository interface {
	Get(portfolioID uuid.UUID) (*model.Portfolio, error)
	GetForUpdate(tx *sql.Tx, portfolioID uuid.UUID) (*model.Portfolio, error)
	UpdateCashBalance(tx *sql.Tx, portfolioID uuid.UUID, balance decimal.Decimal) (*model.Portfolio, error)
	Add(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error)
}

type portfolioRepositoryHandler struct {
	Db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return portfolioRepositoryHandler{Db: db}
}

func (h portfolioRepositoryHandler) Get(portfolioID uuid.UUID) (*model.Portfolio, error) {
	query := table.Portfolio.
		SELECT(table.Portfolio.AllColumns).
		WHERE(table.Portfolio.PortfolioID.EQ(postgres.UUID(portfolioID)))

	out := model.Portfolio{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: portfolio %s", domain.ErrNotFound, portfolioID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return &out, nil
}

// GetForUpdate locks the portfolio row until the surrounding transaction
// finishes. Concurrent orders against the same portfolio queue up here.
func (h portfolioRepositoryHandler) GetForUpdate(tx *sql.Tx, portfolioID uuid.UUID) (*model.Portfolio, error) {
	query := table.Portfolio.
		SELECT(table.Portfolio.AllColumns).
		WHERE(table.Portfolio.PortfolioID.EQ(postgres.UUID(portfolioID))).
		FOR(postgres.UPDATE())

	out := model.Portfolio{}
	err := query.Query(tx, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: portfolio %s", domain.ErrNotFound, portfolioID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to lock portfolio: %w", err)
	}

	return &out, nil
}

func (h portfolioRepositoryHandler) UpdateCashBalance(tx *sql.Tx, portfolioID uuid.UUID, balance decimal.Decimal) (*model.Portfolio, error) {
	query := table.Portfolio.
		UPDATE(table.Portfolio.CashBalance).
		MODEL(model.Portfolio{CashBalance: balance}).
		WHERE(table.Portfolio.PortfolioID.EQ(postgres.UUID(portfolioID))).
		RETURNING(table.Portfolio.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Portfolio{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio balance: %w", err)
	}

	return &out, nil
}

func (h portfolioRepositoryHandler) Add(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	query := table.Portfolio.
		INSERT(table.Portfolio.MutableColumns).
		MODEL(p).
		RETURNING(table.Portfolio.AllColumns)

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	out := model.Portfolio{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return &out, nil
}
