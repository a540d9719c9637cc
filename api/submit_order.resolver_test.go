package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"papertrade/internal/ledger"
	"papertrade/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ledger.MemoryStore, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := ledger.NewMemoryStore()
	portfolio := store.CreatePortfolio(uuid.New(), decimal.NewFromInt(10000))

	positionService := service.NewPositionService(store)
	handler := ApiHandler{
		Ledger:          store,
		OrderService:    service.NewOrderService(store),
		PositionService: positionService,
	}

	router := gin.New()
	router.POST("/submitOrder", handler.submitOrder)
	router.POST("/getPositions", handler.getPositions)

	return router, store, portfolio.PortfolioID
}

func postJson(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, err := http.NewRequest("POST", path, bytes.NewReader(raw))
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	return w
}

func Test_submitOrder(t *testing.T) {
	t.Run("buy then check positions", func(t *testing.T) {
		router, _, portfolioID := newTestRouter(t)

		w := postJson(t, router, "/submitOrder", submitOrderRequest{
			PortfolioID: portfolioID.String(),
			Symbol:      "AAPL",
			Side:        "BUY",
			Quantity:    10,
			Price:       150,
		})
		require.Equal(t, 200, w.Code)

		resp := submitOrderResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, float64(8500), resp.Balance)

		w = postJson(t, router, "/getPositions", getPositionsRequest{PortfolioID: portfolioID.String()})
		require.Equal(t, 200, w.Code)

		positions := []positionResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &positions))
		require.Len(t, positions, 1)
		require.Equal(t, "AAPL", positions[0].Symbol)
		require.Equal(t, int32(10), positions[0].Quantity)
	})

	t.Run("insufficient funds is a client error", func(t *testing.T) {
		router, _, portfolioID := newTestRouter(t)

		w := postJson(t, router, "/submitOrder", submitOrderRequest{
			PortfolioID: portfolioID.String(),
			Symbol:      "AAPL",
			Side:        "BUY",
			Quantity:    100,
			Price:       150,
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("unknown side is rejected", func(t *testing.T) {
		router, _, portfolioID := newTestRouter(t)

		w := postJson(t, router, "/submitOrder", submitOrderRequest{
			PortfolioID: portfolioID.String(),
			Symbol:      "AAPL",
			Side:        "HOLD",
			Quantity:    1,
			Price:       150,
		})
		require.Equal(t, 400, w.Code)
	})

	t.Run("unknown portfolio is a 404", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		w := postJson(t, router, "/submitOrder", submitOrderRequest{
			PortfolioID: uuid.New().String(),
			Symbol:      "AAPL",
			Side:        "BUY",
			Quantity:    1,
			Price:       150,
		})
		require.Equal(t, 404, w.Code)
	})

	t.Run("malformed portfolio id is rejected", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		w := postJson(t, router, "/submitOrder", submitOrderRequest{
			PortfolioID: "not-a-uuid",
			Symbol:      "AAPL",
			Side:        "BUY",
			Quantity:    1,
			Price:       150,
		})
		require.Equal(t, 400, w.Code)
		require.Contains(t, fmt.Sprint(w.Body.String()), "invalid portfolio id")
	})
}
