package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"
	"zodiac/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogStub satisfies only the read path the forecast service touches.
type catalogStub struct {
	repository.ProductRepository
	items []model.Product
}

func (s catalogStub) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.items, nil
}

func TestForecastHandler_Estimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	catalog := []model.Product{
		{Name: "Widget", PricePerUnit: decimal.RequireFromString("10.00"), MonthlySales: 100},
		{Name: "Gadget", PricePerUnit: decimal.RequireFromString("20.00"), MonthlySales: 50},
		{Name: "Gizmo", PricePerUnit: decimal.RequireFromString("15.00"), MonthlySales: 75},
		{Name: "Doohickey", PricePerUnit: decimal.RequireFromString("30.00"), MonthlySales: 30},
	}
	svc := service.NewForecastService(catalogStub{items: catalog}, 1.05, t.TempDir())

	r := gin.New()
	r.GET("/v1/forecast", NewForecastHandler(svc).Estimate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/forecast", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 4)
	assert.Equal(t, 1, resp.Increasing)
	assert.Equal(t, 3, resp.Decreasing)
	assert.InDelta(t, 1.05, resp.ProbeFactor, 1e-9)
}
