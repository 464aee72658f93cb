package usecase

import (
	"context"
	"sync"
	"testing"

	"ordersd/internal/domain"
	"ordersd/internal/infra/db"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	eventType string
	subject   string
	data      any
}

func (p *capturePublisher) Publish(eventType, subject string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{eventType, subject, data})
}

func newTestService() (*OrderService, *capturePublisher) {
	publisher := &capturePublisher{}
	return NewOrderService(db.NewMemoryOrderRepository(), publisher, nil), publisher
}

func TestCreateOrder_PublishesOneEvent(t *testing.T) {
	svc, publisher := newTestService()
	order, err := svc.CreateOrder(context.Background(), "cust-1", []string{"item-1", "item-2"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("status = %q, want pending", order.Status)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("events = %d, want 1", len(publisher.events))
	}
	event := publisher.events[0]
	if event.eventType != "order.created" {
		t.Fatalf("event type = %q", event.eventType)
	}
	if event.subject != "orders/"+order.ID {
		t.Fatalf("subject = %q", event.subject)
	}
	data, ok := event.data.(map[string]any)
	if !ok {
		t.Fatalf("data type = %T", event.data)
	}
	if data["id"] != order.ID {
		t.Fatalf("data.id = %v, want %s", data["id"], order.ID)
	}
}

func TestCreateOrder_TrimsBlankItems(t *testing.T) {
	svc, _ := newTestService()
	order, err := svc.CreateOrder(context.Background(), "cust-1", []string{" item-1 ", "", "  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0] != "item-1" {
		t.Fatalf("items = %v", order.Items)
	}
}

func TestCreateOrder_AllBlankItemsRejected(t *testing.T) {
	svc, publisher := newTestService()
	_, err := svc.CreateOrder(context.Background(), "cust-1", []string{"", "   "})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("err = %v, want validation_error", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("failed create emitted %d events", len(publisher.events))
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetOrder(context.Background(), "does-not-exist")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestUpdateOrderStatus_LegalTransition(t *testing.T) {
	svc, publisher := newTestService()
	order, err := svc.CreateOrder(context.Background(), "cust-1", []string{"item-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, domain.OrderPaid)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.OrderPaid {
		t.Fatalf("status = %q", updated.Status)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("events = %d, want 2", len(publisher.events))
	}
	event := publisher.events[1]
	if event.eventType != "order.updated" {
		t.Fatalf("event type = %q", event.eventType)
	}
	data := event.data.(map[string]any)
	if data["previousStatus"] != "pending" || data["status"] != "paid" {
		t.Fatalf("data = %v", data)
	}
}

func TestUpdateOrderStatus_IllegalTransition(t *testing.T) {
	svc, publisher := newTestService()
	order, err := svc.CreateOrder(context.Background(), "cust-1", []string{"item-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, domain.OrderDelivered)
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("illegal transition emitted an event")
	}
}

func TestListOrders_Pagination(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 5; i++ {
		if _, err := svc.CreateOrder(context.Background(), "cust-1", []string{"item"}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	page, err := svc.ListOrders(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("total = %d, want 5", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Limit != 2 || page.Offset != 1 {
		t.Fatalf("page = %+v", page)
	}
}
