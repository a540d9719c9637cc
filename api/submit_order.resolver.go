package api

import (
	"fmt"

	"papertrade/internal/domain"
	"papertrade/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type submitOrderRequest struct {
	PortfolioID string  `json:"portfolioID"`
	Symbol      string  `json:"symbol"`
	Side        string  `json:"side"`
	Quantity    int32   `json:"quantity"`
	Price       float64 `json:"price"`
}

type submitOrderResponse struct {
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
	Success bool    `json:"success"`
}

func (m ApiHandler) submitOrder(c *gin.Context) {
	var requestBody submitOrderRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %s", domain.ErrValidation, err), c, 400)
		return
	}

	portfolioID, err := uuid.Parse(requestBody.PortfolioID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: invalid portfolio id: %s", domain.ErrValidation, err), c, 400)
		return
	}

	side, err := domain.ParseTradeSide(requestBody.Side)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := m.OrderService.ExecuteOrder(c.Request.Context(), service.ExecuteOrderInput{
		PortfolioID:   portfolioID,
		Symbol:        requestBody.Symbol,
		Side:          side,
		Quantity:      requestBody.Quantity,
		PricePerShare: decimal.NewFromFloat(requestBody.Price),
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	verb := "purchased"
	if side == domain.TradeSideSell {
		verb = "sold"
	}

	c.JSON(200, submitOrderResponse{
		Message: fmt.Sprintf("Successfully %s %d shares of %s", verb, requestBody.Quantity, requestBody.Symbol),
		Balance: result.NewBalance.InexactFloat64(),
		Success: true,
	})
}
