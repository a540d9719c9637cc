package api

import (
	"fmt"
	"time"

	"papertrade/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type getTradesRequest struct {
	PortfolioID string `json:"portfolioID"`
}

type tradeResponse struct {
	TradeID       uuid.UUID `json:"tradeID"`
	Symbol        string    `json:"symbol"`
	Side          string    `json:"side"`
	Quantity      int32     `json:"quantity"`
	PricePerShare float64   `json:"pricePerShare"`
	ExecutedAt    string    `json:"executedAt"`
}

func (m ApiHandler) getTrades(c *gin.Context) {
	var requestBody getTradesRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %s", domain.ErrValidation, err), c, 400)
		return
	}

	portfolioID, err := uuid.Parse(requestBody.PortfolioID)
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

	out := []tradeResponse{}
	for _, t := range trades {
		out = append(out, tradeResponse{
			TradeID:       t.TradeID,
			Symbol:        t.Symbol,
			Side:          string(t.Side),
			Quantity:      t.Quantity,
			PricePerShare: t.PricePerShare.InexactFloat64(),
			ExecutedAt:    t.ExecutedAt.Format(time.RFC3339),
		})
	}

	c.JSON(200, out)
}
