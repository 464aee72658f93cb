package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// orderTransitions lists the legal forward moves for an order.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderPending: OrderPaid,
	OrderPaid:    OrderShipped,
	OrderShipped: OrderDelivered,
}

// CanTransition reports whether an order may move from one status to the next.
func CanTransition(from, to OrderStatus) bool {
	return orderTransitions[from] == to
}

type Order struct {
	ID         string
	CustomerID string
	Items      []string
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
