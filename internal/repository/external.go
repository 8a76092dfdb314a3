package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// CustomersCollection holds the digital-menu customer documents, each
// embedding the orders that customer placed.
const CustomersCollection = "digital_menu_customers"

// MenuSource reads the digital-menu customer collection and patches the
// per-order sync bookkeeping fields. Business fields on external orders are
// owned by the digital menu and are never written here.
type MenuSource struct {
	coll *mongo.Collection
}

func NewMenuSource(db *mongo.Database) *MenuSource {
	return &MenuSource{coll: db.Collection(CustomersCollection)}
}

func (m *MenuSource) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []entity.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}

	return customers, nil
}

// MarkOrderSynced stamps syncedToPOS/syncedAt/posOrderId on the embedded
// order via a positional update.
func (m *MenuSource) MarkOrderSynced(ctx context.Context, customerID primitive.ObjectID, orderID, posOrderID string, syncedAt time.Time) error {
	filter := bson.M{"_id": customerID, "orders._id": orderID}
	update := bson.M{"$set": bson.M{
		"orders.$.syncedToPOS": true,
		"orders.$.syncedAt":    syncedAt,
		"orders.$.posOrderId":  posOrderID,
	}}

	_, err := m.coll.UpdateOne(ctx, filter, update)
	return err
}

// SetTableStatus writes the customer-level tableStatus projection so the
// digital-menu UI reflects kitchen progress without polling the POS.
func (m *MenuSource) SetTableStatus(ctx context.Context, customerID primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{
		"tableStatus": status,
		"updatedAt":   time.Now(),
	}}

	_, err := m.coll.UpdateOne(ctx, bson.M{"_id": customerID}, update)
	return err
}

// SetTableStatusByPhone is used on auto-checkout, where the external order
// only carries the customer's phone.
func (m *MenuSource) SetTableStatusByPhone(ctx context.Context, phone, status string) error {
	update := bson.M{"$set": bson.M{
		"tableStatus": status,
		"updatedAt":   time.Now(),
	}}

	_, err := m.coll.UpdateOne(ctx, bson.M{"customerPhone": phone}, update)
	return err
}
