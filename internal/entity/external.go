package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a digital-menu customer document. Each customer embeds the
// orders they placed through the digital menu; the sync engine reads these
// and patches only the per-order sync bookkeeping fields and the
// customer-level tableStatus.
type Customer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerID    string             `json:"customerId" bson:"customerId"`
	CustomerName  string             `json:"customerName" bson:"customerName"`
	CustomerPhone string             `json:"customerPhone" bson:"customerPhone"`
	TableStatus   string             `json:"tableStatus,omitempty" bson:"tableStatus,omitempty"`
	Orders        []ExternalOrder    `json:"orders" bson:"orders"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ExternalOrder is one order placed through the digital menu. The engine
// never rewrites its business fields; SyncedToPOS/SyncedAt/POSOrderID are
// the only fields it owns.
type ExternalOrder struct {
	ID            string              `json:"_id" bson:"_id"`
	Status        string              `json:"status" bson:"status"`
	PaymentStatus string              `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod string              `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	Items         []ExternalOrderItem `json:"items" bson:"items"`
	Subtotal      float64             `json:"subtotal" bson:"subtotal"`
	Tax           float64             `json:"tax" bson:"tax"`
	Total         float64             `json:"total" bson:"total"`
	TableNumber   string              `json:"tableNumber,omitempty" bson:"tableNumber,omitempty"`
	FloorNumber   string              `json:"floorNumber,omitempty" bson:"floorNumber,omitempty"`
	OrderDate     time.Time           `json:"orderDate" bson:"orderDate"`
	SyncedToPOS   bool                `json:"syncedToPOS,omitempty" bson:"syncedToPOS,omitempty"`
	SyncedAt      *time.Time          `json:"syncedAt,omitempty" bson:"syncedAt,omitempty"`
	POSOrderID    string              `json:"posOrderId,omitempty" bson:"posOrderId,omitempty"`
}

type ExternalOrderItem struct {
	Name       string  `json:"name" bson:"name"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	Price      float64 `json:"price" bson:"price"`
	SpiceLevel string  `json:"spiceLevel,omitempty" bson:"spiceLevel,omitempty"`
	Notes      string  `json:"notes,omitempty" bson:"notes,omitempty"`
}
