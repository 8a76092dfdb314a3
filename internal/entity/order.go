package entity

import "time"

// Order statuses used by the POS. Orders ingested from the digital menu
// start in StatusSentToKitchen unless the customer already paid online.
const (
	OrderStatusSentToKitchen = "sent_to_kitchen"
	OrderStatusBilled        = "billed"
	OrderStatusPaid          = "paid"

	OrderTypeDineIn = "dine-in"
)

// Per-line kitchen statuses for order items.
const (
	ItemStatusNew       = "new"
	ItemStatusPreparing = "preparing"
	ItemStatusReady     = "ready"
	ItemStatusServed    = "served"
)

// Table statuses. "free"/"occupied" are authoritative; the kitchen-progress
// values are projections derived from the item statuses of the current order.
const (
	TableStatusFree      = "free"
	TableStatusOccupied  = "occupied"
	TableStatusPreparing = "preparing"
	TableStatusReady     = "ready"
	TableStatusServed    = "served"
)

type Order struct {
	ID            int       `json:"id"`
	TableID       *int      `json:"table_id,omitempty"`
	OrderType     string    `json:"order_type"` // e.g. "dine-in"
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	PaymentMode   string    `json:"payment_mode"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID           int     `json:"id"`
	OrderID      int     `json:"order_id"`
	MenuItemID   string  `json:"menu_item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	IsVegetarian bool    `json:"is_vegetarian"`
	Notes        string  `json:"notes,omitempty"`
	Status       string  `json:"status"`
}

type Table struct {
	ID             int    `json:"id"`
	Number         string `json:"number"`
	FloorID        int    `json:"floor_id"`
	Status         string `json:"status"`
	CurrentOrderID *int   `json:"current_order_id,omitempty"`
}

type Floor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	IsVegetarian bool    `json:"is_vegetarian"`
}

// UnknownMenuItemID is referenced by order items whose external line could
// not be matched against the menu catalog. Ingestion never blocks on a miss.
const UnknownMenuItemID = "unknown"

type Invoice struct {
	ID            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	OrderID       int       `json:"order_id"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	PaymentMode   string    `json:"payment_mode"`
	Status        string    `json:"status"` // "Paid" once generated
	ItemsJSON     string    `json:"items_json"`
	CreatedAt     time.Time `json:"created_at"`
}

// InvoiceItem is the serialized per-line snapshot stored on an invoice.
type InvoiceItem struct {
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	IsVegetarian bool    `json:"is_vegetarian"`
	Notes        string  `json:"notes,omitempty"`
}
