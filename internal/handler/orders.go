package handler

import (
	"net/http"

	"zodiac/internal/apierror"
	"zodiac/internal/dto"
	"zodiac/internal/middleware"
	"zodiac/internal/model"
	"zodiac/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	orders  *service.OrderService
	catalog *service.CatalogService
}

func NewOrdersHandler(orders *service.OrderService, catalog *service.CatalogService) *OrdersHandler {
	return &OrdersHandler{orders: orders, catalog: catalog}
}

// Place godoc
// @Summary Place a customer order
// @Description Atomically decrements stock and records the order. Insufficient stock is rejected whole.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PlaceOrderRequest true "Product and units"
// @Success 201 {object} dto.OrderResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders [post]
func (h *OrdersHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	customerID, err := uuid.Parse(claims.ActorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.orders.PlaceCustomerOrder(c.Request.Context(), customerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List all orders (admin)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param type query string false "customer_request | restock_request"
// @Param status query string false "Pending | Delivered"
// @Param product_id query string false "Product UUID"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Items per page (default 50)"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.catalog.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns the calling customer's own order history.
func (h *OrdersHandler) ListMine(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	filter.CustomerID = claims.ActorID
	filter.Type = model.OrderTypeCustomer

	resp, err := h.catalog.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
