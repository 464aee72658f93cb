package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ordersd/internal/domain"
)

// MemoryOrderRepository backs the no-db mode and tests.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: map[string]domain.Order{}}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; ok {
		return domain.Conflict(fmt.Sprintf("order %s already exists", order.ID))
	}
	r.orders[order.ID] = order
	return nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.NotFound(fmt.Sprintf("order %s not found", id))
	}
	return order, nil
}

func (r *MemoryOrderRepository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return domain.NotFound(fmt.Sprintf("order %s not found", id))
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

func (r *MemoryOrderRepository) List(_ context.Context, limit, offset int) ([]domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, order)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Order{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}
