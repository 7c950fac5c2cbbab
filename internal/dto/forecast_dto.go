package dto

import "github.com/shopspring/decimal"

// ForecastItem is one product annotated with its fitted trend. Labeled is
// false when the catalog had fewer than two distinct price points and no
// regression could be fit.
type ForecastItem struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	MonthlySales   int             `json:"monthly_sales"`
	PredictedSales float64         `json:"predicted_sales,omitempty"`
	Trend          string          `json:"trend,omitempty"` // "Increasing" | "Decreasing"
	Labeled        bool            `json:"labeled"`
}

type ForecastResponse struct {
	Items       []ForecastItem `json:"items"`
	Increasing  int            `json:"increasing"`
	Decreasing  int            `json:"decreasing"`
	ProbeFactor float64        `json:"probe_factor"`
	Summary     string         `json:"summary"`
}
