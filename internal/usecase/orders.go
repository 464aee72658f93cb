package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ordersd/internal/domain"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	List(ctx context.Context, limit, offset int) ([]domain.Order, int64, error)
}

// EventPublisher emits a CloudEvent after a committed mutation. Delivery
// runs detached from the request; the service never waits on it.
type EventPublisher interface {
	Publish(eventType, subject string, data any)
}

type OrderService struct {
	repo   OrderRepository
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewOrderService(repo OrderRepository, events EventPublisher, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		repo:   repo,
		events: events,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type OrderPage struct {
	Items  []domain.Order
	Total  int64
	Limit  int
	Offset int
}

func (s *OrderService) CreateOrder(ctx context.Context, customerID string, items []string) (domain.Order, error) {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return domain.Order{}, domain.Validation("items must contain at least 1 valid elements")
	}
	now := s.now().UTC()
	order := domain.Order{
		ID:         s.newID(),
		CustomerID: strings.TrimSpace(customerID),
		Items:      cleaned,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return domain.Order{}, err
	}
	s.events.Publish("order.created", "orders/"+order.ID, orderEventData(order))
	s.logger.Info("order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"items_count", len(order.Items),
	)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !domain.CanTransition(order.Status, status) {
		return domain.Order{}, domain.Conflict(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return domain.Order{}, err
	}
	previous := order.Status
	order.Status = status
	order.UpdatedAt = s.now().UTC()
	s.events.Publish("order.updated", "orders/"+order.ID, map[string]any{
		"id":             order.ID,
		"status":         string(order.Status),
		"previousStatus": string(previous),
	})
	s.logger.Info("order status updated",
		"order_id", order.ID,
		"status", string(order.Status),
		"previous_status", string(previous),
	)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) (OrderPage, error) {
	orders, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return OrderPage{}, err
	}
	return OrderPage{Items: orders, Total: total, Limit: limit, Offset: offset}, nil
}

func orderEventData(order domain.Order) map[string]any {
	return map[string]any{
		"id":         order.ID,
		"customerId": order.CustomerID,
		"items":      order.Items,
		"status":     string(order.Status),
	}
}
