package service

import (
	"context"
	"testing"

	"zodiac/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	name  string
	price string
	sales int
}

func catalogOf(rows ...row) []model.Product {
	out := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Product{
			Name:         r.name,
			PricePerUnit: decimal.RequireFromString(r.price),
			MonthlySales: r.sales,
		})
	}
	return out
}

func referenceCatalog() []model.Product {
	return catalogOf(
		row{"Widget", "10.00", 100},
		row{"Gadget", "20.00", 50},
		row{"Gizmo", "15.00", 75},
		row{"Doohickey", "30.00", 30},
	)
}

func TestEstimateTrends_ReferenceCatalog(t *testing.T) {
	resp := estimateTrends(referenceCatalog(), 1.05)

	require.Len(t, resp.Items, 4)
	for _, item := range resp.Items {
		assert.True(t, item.Labeled, item.Name)
	}

	// OLS on (price, sales): slope = cov/var = -189.0625/54.6875,
	// intercept = 63.75 - slope*18.75.
	slope := -3.4571428571
	intercept := 128.5714285714
	byName := make(map[string]float64, 4)
	trends := make(map[string]string, 4)
	for _, item := range resp.Items {
		byName[item.Name] = item.PredictedSales
		trends[item.Name] = item.Trend
	}

	for _, tc := range []struct {
		name  string
		price float64
	}{
		{"Widget", 10}, {"Gadget", 20}, {"Gizmo", 15}, {"Doohickey", 30},
	} {
		expected := intercept + slope*(tc.price*1.05)
		assert.InDelta(t, expected, byName[tc.name], 1e-6, tc.name)
	}

	assert.Equal(t, "Decreasing", trends["Widget"])
	assert.Equal(t, "Increasing", trends["Gadget"])
	assert.Equal(t, "Decreasing", trends["Gizmo"])
	assert.Equal(t, "Decreasing", trends["Doohickey"])
	assert.Equal(t, 1, resp.Increasing)
	assert.Equal(t, 3, resp.Decreasing)
	assert.Contains(t, resp.Summary, "1 show increasing")
}

func TestEstimateTrends_ProbeAtCurrentPrice(t *testing.T) {
	resp := estimateTrends(referenceCatalog(), 1.0)

	trends := make(map[string]string, 4)
	for _, item := range resp.Items {
		trends[item.Name] = item.Trend
	}
	// At the current price the cheap high-sellers regress toward the line.
	assert.Equal(t, "Decreasing", trends["Widget"])
	assert.Equal(t, "Increasing", trends["Gadget"])
	assert.Equal(t, "Increasing", trends["Gizmo"])
	assert.Equal(t, "Decreasing", trends["Doohickey"])
}

func TestEstimateTrends_Deterministic(t *testing.T) {
	a := estimateTrends(referenceCatalog(), 1.05)
	b := estimateTrends(referenceCatalog(), 1.05)
	assert.Equal(t, a, b)
}

func TestEstimateTrends_DegenerateCatalogUnlabeled(t *testing.T) {
	// Single product: no price variance, no line to fit.
	resp := estimateTrends(catalogOf(row{"Widget", "10.00", 100}), 1.05)
	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].Labeled)
	assert.Empty(t, resp.Items[0].Trend)
	assert.Equal(t, 0, resp.Increasing)
	assert.Contains(t, resp.Summary, "Insufficient price variation")

	// Several products all at the same price: same story.
	resp = estimateTrends(catalogOf(
		row{"Widget", "10.00", 100},
		row{"Gadget", "10.00", 50},
		row{"Gizmo", "10.00", 75},
	), 1.05)
	for _, item := range resp.Items {
		assert.False(t, item.Labeled, item.Name)
	}
}

func TestEstimateTrends_EmptyCatalog(t *testing.T) {
	resp := estimateTrends(nil, 1.05)
	assert.Empty(t, resp.Items)
	assert.Contains(t, resp.Summary, "No products")
}

func TestForecastService_UsesCatalog(t *testing.T) {
	products := newStubProductRepo()
	for _, p := range referenceCatalog() {
		cp := p
		products.add(&cp)
	}
	svc := NewForecastService(products, 1.05, t.TempDir())

	resp, err := svc.EstimateTrends(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Items, 4)
	assert.Equal(t, 1.05, resp.ProbeFactor)
}
