package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ordersd/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model, err := toModel(order)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict(fmt.Sprintf("order %s already exists", order.ID))
		}
		return err
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (domain.Order, error) {
	if r.db == nil {
		return domain.Order{}, errDBUnavailable
	}
	var model OrderModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.NotFound(fmt.Sprintf("order %s not found", id))
		}
		return domain.Order{}, err
	}
	return fromModel(model)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(fmt.Sprintf("order %s not found", id))
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]domain.Order, int64, error) {
	if r.db == nil {
		return nil, 0, errDBUnavailable
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&OrderModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var models []OrderModel
	err := r.db.WithContext(ctx).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	orders := make([]domain.Order, 0, len(models))
	for _, model := range models {
		order, err := fromModel(model)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, total, nil
}

func toModel(order domain.Order) (OrderModel, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return OrderModel{}, err
	}
	return OrderModel{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		ItemsJSON:  string(items),
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}, nil
}

func fromModel(model OrderModel) (domain.Order, error) {
	var items []string
	if model.ItemsJSON != "" {
		if err := json.Unmarshal([]byte(model.ItemsJSON), &items); err != nil {
			return domain.Order{}, err
		}
	}
	return domain.Order{
		ID:         model.ID,
		CustomerID: model.CustomerID,
		Items:      items,
		Status:     domain.OrderStatus(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}, nil
}
