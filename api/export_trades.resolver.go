package api

import (
	"fmt"

	"papertrade/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

type tradeCsvRow struct {
	TradeID       string `csv:"trade_id"`
	Symbol        string `csv:"symbol"`
	Side          string `csv:"side"`
	Quantity      int32  `csv:"quantity"`
	PricePerShare string `csv:"price_per_share"`
	ExecutedAt    string `csv:"executed_at"`
}

// exportTrades streams the full ledger for a portfolio as csv, newest last.
func (m ApiHandler) exportTrades(c *gin.Context) {
	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: invalid portfolio id: %s", domain.ErrValidation, err), c, 400)
		return
	}

	if _, err := m.Ledger.GetPortfolio(c.Request.Context(), portfolioID); err != nil {
		returnErrorJson(err, c)
		return
	}

	trades, err := m.Ledger.ListTrades(c.Request.Context(), portfolioID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	rows := []tradeCsvRow{}
	for _, t := range trades {
		rows = append(rows, tradeCsvRow{
			TradeID:       t.TradeID.String(),
			Symbol:        t.Symbol,
			Side:          string(t.Side),
			Quantity:      t.Quantity,
			PricePerShare: t.PricePerShare.StringFixed(2),
			ExecutedAt:    t.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to marshal trades csv: %w", err), c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=trades-%s.csv", portfolioID))
	c.Data(200, "text/csv", []byte(out))
}
