package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// ErrAlreadyBilled is returned by CheckoutOrder when the order is already in
// a terminal billed/paid state. The sync engine treats this as "nothing to do".
var ErrAlreadyBilled = errors.New("order already billed")

// Repository gives the sync engine its narrow view of the POS MySQL store.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetOrder(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT id, table_id, order_type, customer_name, customer_phone, payment_mode, status, total, created_at, updated_at FROM orders WHERE id = ?`

	order := &entity.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.TableID, &order.OrderType, &order.CustomerName, &order.CustomerPhone, &order.PaymentMode, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	query := `INSERT INTO orders (table_id, order_type, customer_name, customer_phone, payment_mode, status, total, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	res, err := r.db.ExecContext(ctx, query, order.TableID, order.OrderType, order.CustomerName, order.CustomerPhone, order.PaymentMode, order.Status, order.Total)
	if err != nil {
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	return order, nil
}

func (r *Repository) CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error) {
	query := `INSERT INTO order_items (order_id, menu_item_id, name, quantity, price, is_vegetarian, notes, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, item.OrderID, item.MenuItemID, item.Name, item.Quantity, item.Price, item.IsVegetarian, item.Notes, item.Status)
	if err != nil {
		return nil, err
	}

	itemID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	item.ID = int(itemID)
	return item, nil
}

func (r *Repository) GetOrderItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	query := `SELECT id, order_id, menu_item_id, name, quantity, price, is_vegetarian, notes, status FROM order_items WHERE order_id = ?`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		item := entity.OrderItem{}
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price, &item.IsVegetarian, &item.Notes, &item.Status)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *Repository) UpdateOrderItemStatus(ctx context.Context, itemID int, status string) error {
	query := `UPDATE order_items SET status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, itemID)
	return err
}

func (r *Repository) UpdateOrderTotal(ctx context.Context, orderID int, total float64) error {
	query := `UPDATE orders SET total = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, total, orderID)
	return err
}

// CheckoutOrder moves an order to "paid" with the given payment mode. The
// current status is checked inside the same transaction so a second checkout
// of the same order fails with ErrAlreadyBilled instead of double-billing.
func (r *Repository) CheckoutOrder(ctx context.Context, orderID int, paymentMode string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ? FOR UPDATE`, orderID).Scan(&status)
	if err != nil {
		tx.Rollback()
		return err
	}

	if status == entity.OrderStatusBilled || status == entity.OrderStatusPaid {
		tx.Rollback()
		return fmt.Errorf("checkout order %d: %w", orderID, ErrAlreadyBilled)
	}

	query := `UPDATE orders SET status = ?, payment_mode = ?, updated_at = NOW() WHERE id = ?`
	_, err = tx.ExecContext(ctx, query, entity.OrderStatusPaid, paymentMode, orderID)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetTables(ctx context.Context) ([]entity.Table, error) {
	query := `SELECT id, number, floor_id, status, current_order_id FROM tables`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []entity.Table
	for rows.Next() {
		table := entity.Table{}
		err := rows.Scan(&table.ID, &table.Number, &table.FloorID, &table.Status, &table.CurrentOrderID)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, rows.Err()
}

func (r *Repository) GetFloors(ctx context.Context) ([]entity.Floor, error) {
	query := `SELECT id, name FROM floors`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var floors []entity.Floor
	for rows.Next() {
		floor := entity.Floor{}
		if err := rows.Scan(&floor.ID, &floor.Name); err != nil {
			return nil, err
		}
		floors = append(floors, floor)
	}

	return floors, rows.Err()
}

func (r *Repository) GetTable(ctx context.Context, id int) (*entity.Table, error) {
	query := `SELECT id, number, floor_id, status, current_order_id FROM tables WHERE id = ?`

	table := &entity.Table{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&table.ID, &table.Number, &table.FloorID, &table.Status, &table.CurrentOrderID)
	if err != nil {
		return nil, err
	}

	return table, nil
}

func (r *Repository) UpdateTableStatus(ctx context.Context, tableID int, status string) error {
	query := `UPDATE tables SET status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, tableID)
	return err
}

func (r *Repository) UpdateTableOrder(ctx context.Context, tableID int, orderID *int) error {
	query := `UPDATE tables SET current_order_id = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, orderID, tableID)
	return err
}

func (r *Repository) GetInvoices(ctx context.Context) ([]entity.Invoice, error) {
	query := `SELECT id, invoice_number, order_id, subtotal, tax, total, payment_mode, status, items_json, created_at FROM invoices`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []entity.Invoice
	for rows.Next() {
		inv := entity.Invoice{}
		err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.PaymentMode, &inv.Status, &inv.ItemsJSON, &inv.CreatedAt)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (r *Repository) CreateInvoice(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	query := `INSERT INTO invoices (invoice_number, order_id, subtotal, tax, total, payment_mode, status, items_json, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	res, err := r.db.ExecContext(ctx, query, inv.InvoiceNumber, inv.OrderID, inv.Subtotal, inv.Tax, inv.Total, inv.PaymentMode, inv.Status, inv.ItemsJSON)
	if err != nil {
		return nil, err
	}

	invID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	inv.ID = int(invID)
	return inv, nil
}

func (r *Repository) GetMenuItems(ctx context.Context) ([]entity.MenuItem, error) {
	query := `SELECT id, name, price, is_vegetarian FROM menu_items`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.MenuItem
	for rows.Next() {
		item := entity.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.IsVegetarian); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
