package handler

import (
	"net/http"

	"zodiac/internal/service"

	"github.com/gin-gonic/gin"
)

type ForecastHandler struct{ svc *service.ForecastService }

func NewForecastHandler(svc *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// Estimate godoc
// @Summary Demand forecast over the catalog
// @Description Fits a least-squares demand model of monthly sales against price and labels each product's trend at the probed price point.
// @Tags forecast
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ForecastResponse
// @Router /v1/forecast [get]
func (h *ForecastHandler) Estimate(c *gin.Context) {
	resp, err := h.svc.EstimateTrends(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReportPDF renders the forecast to a PDF and streams it back.
func (h *ForecastHandler) ReportPDF(c *gin.Context) {
	path, _, err := h.svc.ReportPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=forecast.pdf")
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
