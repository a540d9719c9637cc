package cmd

import (
	"database/sql"
	"fmt"
	"time"

	"papertrade/api"
	"papertrade/internal"
	"papertrade/internal/db/models/postgres/public/model"
	"papertrade/internal/logger"
	"papertrade/internal/repository"
	"papertrade/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "github.com/lib/pq"
)

// StartingBalance is the fixed cash every new portfolio opens with.
var StartingBalance = decimal.NewFromInt(10000)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	if err := handler.Db.Close(); err != nil {
		logger.Error(fmt.Errorf("failed to close db: %w", err))
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	portfolioRepository := repository.NewPortfolioRepository(dbConn)
	tradeRepository := repository.NewTradeRepository(dbConn)
	stockRepository := repository.NewStockRepository(dbConn)
	quoteRepository := repository.NewQuoteRepository(time.Duration(secrets.QuoteTimeout) * time.Second)

	ledgerStore := repository.NewPostgresLedger(dbConn, portfolioRepository, tradeRepository, stockRepository)

	positionService := service.NewPositionService(ledgerStore)
	orderService := service.NewOrderService(ledgerStore)
	valuationService := service.NewValuationService(ledgerStore, quoteRepository, positionService)
	quoteService := service.NewQuoteService(ledgerStore, quoteRepository)

	return &api.ApiHandler{
		Db:                   dbConn,
		Ledger:               ledgerStore,
		OrderService:         orderService,
		PositionService:      positionService,
		ValuationService:     valuationService,
		QuoteService:         quoteService,
		ApiRequestRepository: repository.ApiRequestRepositoryHandler{},
	}, nil
}

// SeedDemoPortfolio creates a portfolio with the standard starting balance.
// Account sign-up lives outside this service; this is the dev/demo path.
func SeedDemoPortfolio(userID uuid.UUID) (*model.Portfolio, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	defer dbConn.Close()

	portfolioRepository := repository.NewPortfolioRepository(dbConn)

	return portfolioRepository.Add(nil, model.Portfolio{
		UserID:      userID,
		CashBalance: StartingBalance,
	})
}
