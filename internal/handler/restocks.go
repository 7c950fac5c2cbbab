package handler

import (
	"net/http"

	"zodiac/internal/apierror"
	"zodiac/internal/dto"
	"zodiac/internal/middleware"
	"zodiac/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestocksHandler struct {
	orders  *service.OrderService
	catalog *service.CatalogService
}

func NewRestocksHandler(orders *service.OrderService, catalog *service.CatalogService) *RestocksHandler {
	return &RestocksHandler{orders: orders, catalog: catalog}
}

// Create godoc
// @Summary Place a restock request (admin)
// @Description Records a Pending restock request against a supplier. Stock changes only on delivery confirmation.
// @Tags restocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RestockRequestCreate true "Product, supplier, units"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/restocks [post]
func (h *RestocksHandler) Create(c *gin.Context) {
	var req dto.RestockRequestCreate
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.orders.PlaceRestockRequest(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPending returns the calling supplier's open restock requests,
// oldest first.
func (h *RestocksHandler) ListPending(c *gin.Context) {
	claims := middleware.GetClaims(c)
	supplierID, err := uuid.Parse(claims.ActorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}
	resp, err := h.catalog.ListPendingRestocks(c.Request.Context(), supplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirm godoc
// @Summary Confirm a restock delivery (supplier)
// @Description Transitions the request Pending to Delivered and credits stock, exactly once. Repeats return 409.
// @Tags restocks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restock request UUID"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/restocks/{id}/confirm [post]
func (h *RestocksHandler) Confirm(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid request id"))
		return
	}
	claims := middleware.GetClaims(c)
	supplierID, err := uuid.Parse(claims.ActorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.orders.ConfirmRestockDelivery(c.Request.Context(), supplierID, requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
