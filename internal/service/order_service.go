package service

import (
	"context"
	"fmt"
	"time"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"
	"zodiac/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx wraps fn in a database transaction. When db is nil (unit tests with
// stub repositories) fn runs directly with a nil tx; stub methods ignore it.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// OrderService implements order placement and the restock lifecycle.
//
// Both stock-mutating flows rely on conditional single-statement updates:
// the availability check and the mutation are one SQL statement, so two
// concurrent orders can never oversell, and two concurrent delivery
// confirmations can never double-apply.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	suppliers  repository.SupplierRepository
	movements  repository.StockMovementRepository
	dispatcher *worker.Dispatcher

	storeTimeout time.Duration
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	storeTimeout time.Duration,
) *OrderService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &OrderService{
		orders:       orders,
		products:     products,
		users:        users,
		suppliers:    suppliers,
		movements:    movements,
		dispatcher:   dispatcher,
		storeTimeout: storeTimeout,
	}
}

// PlaceCustomerOrder atomically decrements stock and records a Delivered-less
// customer order. Insufficient stock leaves the product row untouched.
func (s *OrderService) PlaceCustomerOrder(ctx context.Context, customerID uuid.UUID, req *dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if req.Units <= 0 {
		return nil, ErrInvalidQuantity
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed product id", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil {
		return nil, storeErr(err)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err)
	}

	order := &model.Order{
		Type:       model.OrderTypeCustomer,
		ProductID:  productID,
		CustomerID: &customer.ID,
		Units:      req.Units,
		Status:     model.OrderStatusPending,
	}

	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		before := product.StockCount
		if tx != nil {
			// Re-read inside the tx so the movement record is exact.
			fresh, err := s.products.FindByIDTx(tx, productID)
			if err != nil {
				return storeErr(err)
			}
			before = fresh.StockCount
		}

		rows, err := s.products.SellStockTx(tx, productID, req.Units)
		if err != nil {
			return storeErr(err)
		}
		if rows == 0 {
			return ErrInsufficientStock
		}

		if err := s.orders.Create(ctx, tx, order); err != nil {
			return storeErr(err)
		}

		return s.recordMovement(tx, &model.StockMovement{
			ProductID:   productID,
			Type:        model.MovementCustomerOrder,
			Quantity:    -req.Units,
			StockBefore: before,
			StockAfter:  before - req.Units,
			Reason:      "customer order",
			OrderID:     &order.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("product_id", productID.String()).
		Int("units", req.Units).
		Msg("customer order placed")

	s.maybeEnqueueLowStockAlert(ctx, productID)

	return s.orderToResponse(order, product, customer, nil), nil
}

// PlaceRestockRequest records a Pending restock request against a supplier.
// Stock does not change until the supplier confirms delivery.
func (s *OrderService) PlaceRestockRequest(ctx context.Context, req *dto.RestockRequestCreate) (*dto.OrderResponse, error) {
	if req.Units <= 0 {
		return nil, ErrInvalidQuantity
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed product id", ErrInvalidInput)
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed supplier id", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err)
	}
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}
	deliveryDate, err := parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		Type:         model.OrderTypeRestock,
		ProductID:    productID,
		SupplierID:   &supplier.ID,
		Units:        req.Units,
		Status:       model.OrderStatusPending,
		DeliveryDate: deliveryDate,
		Note:         req.Note,
	}

	if err := s.orders.Create(ctx, nil, order); err != nil {
		return nil, storeErr(err)
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("supplier_id", supplier.ID.String()).
		Int("units", req.Units).
		Msg("restock request placed")

	return s.orderToResponse(order, product, nil, supplier), nil
}

// ConfirmRestockDelivery transitions a restock request Pending → Delivered
// and credits the product's stock, atomically. A repeated confirmation (or a
// concurrent one that lost the race) returns ErrAlreadyFulfilled with no
// further stock change.
func (s *OrderService) ConfirmRestockDelivery(ctx context.Context, supplierID, requestID uuid.UUID) (*dto.OrderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	order, err := s.orders.FindByID(ctx, requestID)
	if err != nil {
		return nil, storeErr(err)
	}
	if order.Type != model.OrderTypeRestock {
		return nil, fmt.Errorf("%w: not a restock request", ErrInvalidInput)
	}
	if order.SupplierID == nil || *order.SupplierID != supplierID {
		// Do not reveal other suppliers' requests.
		return nil, ErrNotFound
	}
	if order.Status == model.OrderStatusDelivered {
		return nil, ErrAlreadyFulfilled
	}

	now := time.Now()
	err = runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		rows, err := s.orders.MarkDeliveredTx(tx, requestID, now)
		if err != nil {
			return storeErr(err)
		}
		if rows == 0 {
			// A concurrent confirmation won the transition.
			return ErrAlreadyFulfilled
		}

		before := 0
		if tx != nil {
			fresh, err := s.products.FindByIDTx(tx, order.ProductID)
			if err != nil {
				return storeErr(err)
			}
			before = fresh.StockCount
		}

		rows, err = s.products.RestockTx(tx, order.ProductID, order.Units)
		if err != nil {
			return storeErr(err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		return s.recordMovement(tx, &model.StockMovement{
			ProductID:   order.ProductID,
			Type:        model.MovementRestockDelivery,
			Quantity:    order.Units,
			StockBefore: before,
			StockAfter:  before + order.Units,
			Reason:      "restock delivery confirmed",
			OrderID:     &order.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusDelivered
	order.FulfilledAt = &now

	log.Info().
		Str("order_id", order.ID.String()).
		Str("supplier_id", supplierID.String()).
		Int("units", order.Units).
		Msg("restock delivery confirmed")

	return s.orderToResponse(order, order.Product, nil, order.Supplier), nil
}

// recordMovement is skipped in unit-test mode (nil tx) — movement rows only
// exist where there is a real store to put them in.
func (s *OrderService) recordMovement(tx *gorm.DB, m *model.StockMovement) error {
	if tx == nil {
		return nil
	}
	if err := s.movements.CreateTx(tx, m); err != nil {
		return storeErr(err)
	}
	return nil
}

// maybeEnqueueLowStockAlert checks the post-order stock level and queues an
// alert email when it fell below the minimum. Best-effort: a queue failure is
// logged, never surfaced to the customer.
func (s *OrderService) maybeEnqueueLowStockAlert(ctx context.Context, productID uuid.UUID) {
	if s.dispatcher == nil {
		return
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		log.Warn().Err(err).Str("product_id", productID.String()).Msg("low-stock check failed")
		return
	}
	if !product.BelowMinStock() {
		return
	}

	payload := worker.LowStockAlertPayload{
		ProductID:   product.ID.String(),
		ProductName: product.Name,
		StockCount:  product.StockCount,
		MinStock:    product.MinStock,
	}
	if product.Supplier != nil {
		payload.SupplierName = product.Supplier.Name
	}
	if err := s.dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
		log.Error().Err(err).Str("product_id", productID.String()).Msg("failed to enqueue low-stock alert")
	}
}

func parseDeliveryDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed delivery date", ErrInvalidInput)
	}
	return &t, nil
}

func (s *OrderService) orderToResponse(o *model.Order, p *model.Product, customer *model.User, supplier *model.Supplier) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        o.ID.String(),
		Type:      o.Type,
		ProductID: o.ProductID.String(),
		Units:     o.Units,
		Status:    o.Status,
		Note:      o.Note,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
	if p != nil {
		resp.ProductName = p.Name
		resp.TotalCost = p.PricePerUnit.Mul(decimal.NewFromInt(int64(o.Units)))
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		resp.CustomerID = &id
	}
	if customer != nil {
		resp.CustomerName = customer.Username
	}
	if o.SupplierID != nil {
		id := o.SupplierID.String()
		resp.SupplierID = &id
	}
	if supplier != nil {
		resp.SupplierName = supplier.Name
	}
	if o.DeliveryDate != nil {
		d := o.DeliveryDate.Format("2006-01-02")
		resp.DeliveryDate = &d
	}
	if o.FulfilledAt != nil {
		f := o.FulfilledAt.Format(time.RFC3339)
		resp.FulfilledAt = &f
	}
	return resp
}

// orderRowToResponse maps a preloaded order row (from List queries) to its
// response shape.
func orderRowToResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:        o.ID.String(),
		Type:      o.Type,
		ProductID: o.ProductID.String(),
		Units:     o.Units,
		Status:    o.Status,
		Note:      o.Note,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
	if o.Product != nil {
		resp.ProductName = o.Product.Name
		resp.TotalCost = o.Product.PricePerUnit.Mul(decimal.NewFromInt(int64(o.Units)))
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		resp.CustomerID = &id
	}
	if o.Customer != nil {
		resp.CustomerName = o.Customer.Username
	}
	if o.SupplierID != nil {
		id := o.SupplierID.String()
		resp.SupplierID = &id
	}
	if o.Supplier != nil {
		resp.SupplierName = o.Supplier.Name
	}
	if o.DeliveryDate != nil {
		d := o.DeliveryDate.Format("2006-01-02")
		resp.DeliveryDate = &d
	}
	if o.FulfilledAt != nil {
		f := o.FulfilledAt.Format(time.RFC3339)
		resp.FulfilledAt = &f
	}
	return resp
}
