package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// fakeRepo is an in-memory POSRepository.
type fakeRepo struct {
	orders    map[int]*entity.Order
	items     map[int]*entity.OrderItem
	tables    map[int]*entity.Table
	tableIDs  []int
	floors    []entity.Floor
	menu      []entity.MenuItem
	invoices  []entity.Invoice
	nextOrder int
	nextItem  int
	checkouts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders: make(map[int]*entity.Order),
		items:  make(map[int]*entity.OrderItem),
		tables: make(map[int]*entity.Table),
	}
}

func (f *fakeRepo) addTable(id int, number string, floorID int, status string) {
	f.tables[id] = &entity.Table{ID: id, Number: number, FloorID: floorID, Status: status}
	f.tableIDs = append(f.tableIDs, id)
}

func (f *fakeRepo) orderItems(orderID int) []entity.OrderItem {
	var out []entity.OrderItem
	for i := 1; i <= f.nextItem; i++ {
		if item, ok := f.items[i]; ok && item.OrderID == orderID {
			out = append(out, *item)
		}
	}
	return out
}

func (f *fakeRepo) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d not found", id)
	}
	cp := *order
	return &cp, nil
}

func (f *fakeRepo) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	f.nextOrder++
	order.ID = f.nextOrder
	cp := *order
	f.orders[order.ID] = &cp
	return order, nil
}

func (f *fakeRepo) CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error) {
	f.nextItem++
	item.ID = f.nextItem
	cp := *item
	f.items[item.ID] = &cp
	return item, nil
}

func (f *fakeRepo) GetOrderItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	return f.orderItems(orderID), nil
}

func (f *fakeRepo) UpdateOrderItemStatus(ctx context.Context, itemID int, status string) error {
	item, ok := f.items[itemID]
	if !ok {
		return fmt.Errorf("item %d not found", itemID)
	}
	item.Status = status
	return nil
}

func (f *fakeRepo) UpdateOrderTotal(ctx context.Context, orderID int, total float64) error {
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d not found", orderID)
	}
	order.Total = total
	return nil
}

func (f *fakeRepo) CheckoutOrder(ctx context.Context, orderID int, paymentMode string) error {
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d not found", orderID)
	}
	if order.Status == entity.OrderStatusBilled || order.Status == entity.OrderStatusPaid {
		return fmt.Errorf("order %d already billed", orderID)
	}
	order.Status = entity.OrderStatusPaid
	order.PaymentMode = paymentMode
	f.checkouts++
	return nil
}

func (f *fakeRepo) GetTables(ctx context.Context) ([]entity.Table, error) {
	var out []entity.Table
	for _, id := range f.tableIDs {
		out = append(out, *f.tables[id])
	}
	return out, nil
}

func (f *fakeRepo) GetFloors(ctx context.Context) ([]entity.Floor, error) {
	return f.floors, nil
}

func (f *fakeRepo) GetTable(ctx context.Context, id int) (*entity.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, fmt.Errorf("table %d not found", id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) UpdateTableStatus(ctx context.Context, tableID int, status string) error {
	t, ok := f.tables[tableID]
	if !ok {
		return fmt.Errorf("table %d not found", tableID)
	}
	t.Status = status
	return nil
}

func (f *fakeRepo) UpdateTableOrder(ctx context.Context, tableID int, orderID *int) error {
	t, ok := f.tables[tableID]
	if !ok {
		return fmt.Errorf("table %d not found", tableID)
	}
	t.CurrentOrderID = orderID
	return nil
}

func (f *fakeRepo) GetInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeRepo) CreateInvoice(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	inv.ID = len(f.invoices) + 1
	f.invoices = append(f.invoices, *inv)
	return inv, nil
}

func (f *fakeRepo) GetMenuItems(ctx context.Context) ([]entity.MenuItem, error) {
	return f.menu, nil
}

// fakeSource is an in-memory DigitalMenuSource.
type fakeSource struct {
	customers []entity.Customer
	listErr   error
}

func (f *fakeSource) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	// Deep copy so callers see a snapshot, like a real driver would return.
	out := make([]entity.Customer, len(f.customers))
	for i, cust := range f.customers {
		cp := cust
		cp.Orders = append([]entity.ExternalOrder(nil), cust.Orders...)
		out[i] = cp
	}
	return out, nil
}

func (f *fakeSource) MarkOrderSynced(ctx context.Context, customerID primitive.ObjectID, orderID, posOrderID string, syncedAt time.Time) error {
	for ci := range f.customers {
		if f.customers[ci].ID != customerID {
			continue
		}
		for oi := range f.customers[ci].Orders {
			if f.customers[ci].Orders[oi].ID == orderID {
				f.customers[ci].Orders[oi].SyncedToPOS = true
				f.customers[ci].Orders[oi].SyncedAt = &syncedAt
				f.customers[ci].Orders[oi].POSOrderID = posOrderID
				return nil
			}
		}
	}
	return fmt.Errorf("order %s not found", orderID)
}

func (f *fakeSource) SetTableStatus(ctx context.Context, customerID primitive.ObjectID, status string) error {
	for ci := range f.customers {
		if f.customers[ci].ID == customerID {
			f.customers[ci].TableStatus = status
			return nil
		}
	}
	return fmt.Errorf("customer %s not found", customerID.Hex())
}

func (f *fakeSource) SetTableStatusByPhone(ctx context.Context, phone, status string) error {
	for ci := range f.customers {
		if f.customers[ci].CustomerPhone == phone {
			f.customers[ci].TableStatus = status
			return nil
		}
	}
	return fmt.Errorf("customer with phone %s not found", phone)
}

func (f *fakeSource) setOrderStatus(orderID, status string) {
	for ci := range f.customers {
		for oi := range f.customers[ci].Orders {
			if f.customers[ci].Orders[oi].ID == orderID {
				f.customers[ci].Orders[oi].Status = status
			}
		}
	}
}

func (f *fakeSource) setPaymentStatus(orderID, status string) {
	for ci := range f.customers {
		for oi := range f.customers[ci].Orders {
			if f.customers[ci].Orders[oi].ID == orderID {
				f.customers[ci].Orders[oi].PaymentStatus = status
			}
		}
	}
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakePublisher) count(eventType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e == eventType {
			n++
		}
	}
	return n
}
