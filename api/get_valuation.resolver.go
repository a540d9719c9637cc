package api

import (
	"fmt"

	"papertrade/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type getValuationRequest struct {
	PortfolioID string `json:"portfolioID"`
}

type getValuationResponse struct {
	Message    string  `json:"message"`
	Balance    float64 `json:"balance"`
	AssetWorth float64 `json:"assetWorth"`
	NetWorth   float64 `json:"netWorth"`
	Success    bool    `json:"success"`
}

func (m ApiHandler) getValuation(c *gin.Context) {
	var requestBody getValuationRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %s", domain.ErrValidation, err), c, 400)
		return
	}

	portfolioID, err := uuid.Parse(requestBody.PortfolioID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: invalid portfolio id: %s", domain.ErrValidation, err), c, 400)
		return
	}

	netWorth, err := m.ValuationService.CalcNetWorth(c.Request.Context(), portfolioID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, getValuationResponse{
		Message:    "Successfully calculated net worth",
		Balance:    netWorth.CashBalance.InexactFloat64(),
		AssetWorth: netWorth.AssetValue.InexactFloat64(),
		NetWorth:   netWorth.NetWorth.InexactFloat64(),
		Success:    true,
	})
}
