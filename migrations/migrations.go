package migrations

import (
	"database/sql"
	"time"
)

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	if err != nil {
		// Retry creating the table
		for i := 0; i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
			if err == nil {
				break
			}
		}
	}
	return err
}

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			table_id INT NULL,
			order_type VARCHAR(20) NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(32) NOT NULL,
			payment_mode VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			total DOUBLE NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateOrderItems creates the order_items table if it does not exist.
func AutoMigrateOrderItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			menu_item_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE NOT NULL,
			is_vegetarian BOOLEAN NOT NULL DEFAULT TRUE,
			notes VARCHAR(512) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateFloors creates the floors table if it does not exist.
func AutoMigrateFloors(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS floors (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(64) NOT NULL
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateTables creates the tables table if it does not exist.
func AutoMigrateTables(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS tables (
			id INT AUTO_INCREMENT PRIMARY KEY,
			number VARCHAR(16) NOT NULL,
			floor_id INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'free',
			current_order_id INT NULL,
			FOREIGN KEY (floor_id) REFERENCES floors(id)
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateMenuItems creates the menu_items table if it does not exist.
func AutoMigrateMenuItems(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DOUBLE NOT NULL,
			is_vegetarian BOOLEAN NOT NULL DEFAULT TRUE
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigrateInvoices creates the invoices table if it does not exist.
func AutoMigrateInvoices(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS invoices (
			id INT AUTO_INCREMENT PRIMARY KEY,
			invoice_number VARCHAR(32) NOT NULL UNIQUE,
			order_id INT NOT NULL,
			subtotal DOUBLE NOT NULL,
			tax DOUBLE NOT NULL,
			total DOUBLE NOT NULL,
			payment_mode VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			items_json TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id)
		);
	`
	return execWithRetry(db, query, retries)
}
