package api

import (
	"fmt"

	"papertrade/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type getPositionsRequest struct {
	PortfolioID string `json:"portfolioID"`
}

type positionResponse struct {
	Symbol   string `json:"symbol"`
	Quantity int32  `json:"quantity"`
}

func (m ApiHandler) getPositions(c *gin.Context) {
	var requestBody getPositionsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %s", domain.ErrValidation, err), c, 400)
		return
	}

	portfolioID, err := uuid.Parse(requestBody.PortfolioID)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: invalid portfolio id: %s", domain.ErrValidation, err), c, 400)
		return
	}

	positions, err := m.PositionService.ResolvePositions(c.Request.Context(), portfolioID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []positionResponse{}
	for _, p := range positions {
		out = append(out, positionResponse{Symbol: p.Symbol, Quantity: p.Quantity})
	}

	c.JSON(200, out)
}
