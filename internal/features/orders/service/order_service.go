package service

import (
	"context"
	"fmt"

	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/features/orders/domain"
	"bakery-storefront/internal/features/orders/ports"

	"go.uber.org/zap"
)

// OrderService handles customer order views and admin order management.
type OrderService struct {
	// gateway is the bakery backend.
	gateway ports.OrderGateway
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(gateway ports.OrderGateway) *OrderService {
	return &OrderService{
		gateway: gateway,
	}
}

// ListMine returns the orders placed by the viewer.
func (s *OrderService) ListMine(ctx context.Context, viewer ports.Viewer) ([]domain.Order, error) {
	return s.gateway.ListByUser(ctx, viewer.UserID)
}

// Get returns one order. Customers only see their own orders; a foreign order
// is reported as not found.
func (s *OrderService) Get(ctx context.Context, viewer ports.Viewer, id int) (*domain.Order, error) {
	order, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if !viewer.IsAdmin && order.UserID != viewer.UserID {
		logger.Named("orders").Warn("Order requested by another customer",
			zap.Int("order_id", id),
			zap.Int("user_id", viewer.UserID),
		)
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// AdminList returns every order matching filter. A status narrows the backend
// query; the search term is applied locally.
func (s *OrderService) AdminList(ctx context.Context, filter domain.Filter) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	if filter.Status != "" {
		orders, err = s.gateway.ListByStatus(ctx, filter.Status)
	} else {
		orders, err = s.gateway.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return filter.Apply(orders), nil
}

// UpdateStatus moves an order to status. Delivered orders are final.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("order %d is %s: %w", id, current.Status, domain.ErrTerminalStatus)
	}

	updated, err := s.gateway.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	logger.Named("orders").Info("Order status changed",
		zap.Int("order_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
	)
	return updated, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id int) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}
	logger.Named("orders").Info("Order deleted", zap.Int("order_id", id))
	return nil
}
