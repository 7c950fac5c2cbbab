package handler

import (
	"net/http"

	"zodiac/internal/service"

	"github.com/gin-gonic/gin"
)

type SuppliersHandler struct{ catalog *service.CatalogService }

func NewSuppliersHandler(catalog *service.CatalogService) *SuppliersHandler {
	return &SuppliersHandler{catalog: catalog}
}

// List godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SupplierResponse
// @Router /v1/suppliers [get]
func (h *SuppliersHandler) List(c *gin.Context) {
	resp, err := h.catalog.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
