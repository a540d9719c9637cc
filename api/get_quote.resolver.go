package api

import (
	"fmt"
	"strings"
	"time"

	"papertrade/internal/domain"

	"github.com/gin-gonic/gin"
)

type getQuoteRequest struct {
	Symbol string `json:"symbol"`
}

type getQuoteResponse struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	DisplayName string  `json:"displayName"`
	AsOf        string  `json:"asOf"`
}

func (m ApiHandler) getQuote(c *gin.Context) {
	var requestBody getQuoteRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %s", domain.ErrValidation, err), c, 400)
		return
	}

	if strings.TrimSpace(requestBody.Symbol) == "" {
		returnErrorJsonCode(fmt.Errorf("%w: missing symbol", domain.ErrValidation), c, 400)
		return
	}

	quote, err := m.QuoteService.GetQuote(c.Request.Context(), requestBody.Symbol)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, getQuoteResponse{
		Symbol:      quote.Symbol,
		Price:       quote.Price.InexactFloat64(),
		DisplayName: quote.DisplayName,
		AsOf:        quote.AsOf.Format(time.RFC3339),
	})
}
