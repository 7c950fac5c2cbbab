package service

import (
	"context"
	"fmt"
	"strings"

	"zodiac/internal/dto"
	"zodiac/internal/infra"
	"zodiac/internal/model"
	"zodiac/internal/repository"

	"github.com/montanaflynn/stats"
)

// ForecastService estimates demand trends with an ordinary least squares fit
// of monthly sales against unit price across the whole catalog. Each product
// is then probed at price * probeFactor: predicted sales above the current
// figure label the product Increasing, below label it Decreasing.
type ForecastService struct {
	products    repository.ProductRepository
	probeFactor float64
	reportDir   string
}

func NewForecastService(products repository.ProductRepository, probeFactor float64, reportDir string) *ForecastService {
	if probeFactor <= 0 {
		probeFactor = 1.05
	}
	return &ForecastService{products: products, probeFactor: probeFactor, reportDir: reportDir}
}

// EstimateTrends fits the model over the current catalog.
func (s *ForecastService) EstimateTrends(ctx context.Context) (*dto.ForecastResponse, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return estimateTrends(products, s.probeFactor), nil
}

// ReportPDF renders the current forecast to a PDF file and returns its path.
func (s *ForecastService) ReportPDF(ctx context.Context) (string, *dto.ForecastResponse, error) {
	forecast, err := s.EstimateTrends(ctx)
	if err != nil {
		return "", nil, err
	}
	path, err := infra.WriteForecastReport(s.reportDir, forecast)
	if err != nil {
		return "", nil, err
	}
	return path, forecast, nil
}

// estimateTrends is the pure fitting core, separated for testability.
//
// The OLS closed form over (price, monthly_sales) pairs:
//
//	slope     = cov(x, y) / var(x)
//	intercept = mean(y) - slope * mean(x)
//
// With fewer than two distinct prices the variance is zero and no line can
// be fit; every item comes back unlabeled rather than guessing.
func estimateTrends(products []model.Product, probeFactor float64) *dto.ForecastResponse {
	resp := &dto.ForecastResponse{
		Items:       make([]dto.ForecastItem, 0, len(products)),
		ProbeFactor: probeFactor,
	}

	xs := make(stats.Float64Data, 0, len(products))
	ys := make(stats.Float64Data, 0, len(products))
	for i := range products {
		price, _ := products[i].PricePerUnit.Float64()
		xs = append(xs, price)
		ys = append(ys, float64(products[i].MonthlySales))
	}

	variance, err := stats.PopulationVariance(xs)
	fittable := err == nil && variance > 0

	var slope, intercept float64
	if fittable {
		cov, errCov := stats.CovariancePopulation(xs, ys)
		meanX, errX := stats.Mean(xs)
		meanY, errY := stats.Mean(ys)
		if errCov != nil || errX != nil || errY != nil {
			fittable = false
		} else {
			slope = cov / variance
			intercept = meanY - slope*meanX
		}
	}

	var increasingNames, decreasingNames []string
	for i := range products {
		p := &products[i]
		item := dto.ForecastItem{
			ProductID:    p.ID.String(),
			Name:         p.Name,
			PricePerUnit: p.PricePerUnit,
			MonthlySales: p.MonthlySales,
		}
		if fittable {
			price, _ := p.PricePerUnit.Float64()
			item.PredictedSales = intercept + slope*(price*probeFactor)
			item.Labeled = true
			if item.PredictedSales > float64(p.MonthlySales) {
				item.Trend = "Increasing"
				resp.Increasing++
				increasingNames = append(increasingNames, p.Name)
			} else {
				item.Trend = "Decreasing"
				resp.Decreasing++
				decreasingNames = append(decreasingNames, p.Name)
			}
		}
		resp.Items = append(resp.Items, item)
	}

	resp.Summary = buildSummary(fittable, len(products), increasingNames, decreasingNames)
	return resp
}

func buildSummary(fittable bool, total int, increasing, decreasing []string) string {
	if total == 0 {
		return "No products in the catalog; nothing to forecast."
	}
	if !fittable {
		return fmt.Sprintf("Insufficient price variation across %d products to fit a demand model; no trend labels assigned.", total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Across %d products, %d show increasing demand and %d show decreasing demand at the probed price point.",
		total, len(increasing), len(decreasing))
	if len(increasing) > 0 {
		fmt.Fprintf(&b, " Rising: %s.", strings.Join(increasing, ", "))
	}
	if len(decreasing) > 0 {
		fmt.Fprintf(&b, " Falling: %s.", strings.Join(decreasing, ", "))
	}
	return b.String()
}
