package service

import (
	"context"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// POSRepository is the narrow view of POS persistence the sync engine needs.
type POSRepository interface {
	GetOrder(ctx context.Context, id int) (*entity.Order, error)
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	CreateOrderItem(ctx context.Context, item *entity.OrderItem) (*entity.OrderItem, error)
	GetOrderItems(ctx context.Context, orderID int) ([]entity.OrderItem, error)
	UpdateOrderItemStatus(ctx context.Context, itemID int, status string) error
	UpdateOrderTotal(ctx context.Context, orderID int, total float64) error
	CheckoutOrder(ctx context.Context, orderID int, paymentMode string) error
	GetTables(ctx context.Context) ([]entity.Table, error)
	GetFloors(ctx context.Context) ([]entity.Floor, error)
	GetTable(ctx context.Context, id int) (*entity.Table, error)
	UpdateTableStatus(ctx context.Context, tableID int, status string) error
	UpdateTableOrder(ctx context.Context, tableID int, orderID *int) error
	GetInvoices(ctx context.Context) ([]entity.Invoice, error)
	CreateInvoice(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error)
	GetMenuItems(ctx context.Context) ([]entity.MenuItem, error)
}

// DigitalMenuSource is the engine's view of the external ordering surface.
type DigitalMenuSource interface {
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	MarkOrderSynced(ctx context.Context, customerID primitive.ObjectID, orderID, posOrderID string, syncedAt time.Time) error
	SetTableStatus(ctx context.Context, customerID primitive.ObjectID, status string) error
	SetTableStatusByPhone(ctx context.Context, phone, status string) error
}

// SyncService reconciles digital-menu orders into the POS: it ingests
// not-yet-synced orders, converges statuses for already-synced ones, and
// auto-completes billing when the digital menu signals payment.
type SyncService struct {
	repo      POSRepository
	source    DigitalMenuSource
	publisher Publisher
	state     *SyncState
	rdb       *redis.Client // menu catalog cache, may be nil
}

// NewSyncService creates a new instance of SyncService. rdb may be nil, in
// which case menu-item lookups skip the cache.
func NewSyncService(repo POSRepository, source DigitalMenuSource, publisher Publisher, state *SyncState, rdb *redis.Client) *SyncService {
	return &SyncService{
		repo:      repo,
		source:    source,
		publisher: publisher,
		state:     state,
		rdb:       rdb,
	}
}

// State exposes the sync state for status reporting.
func (s *SyncService) State() *SyncState {
	return s.state
}

// HydrateState warms the in-memory sync state from the syncedToPOS flags on
// the external documents. Called once at startup.
func (s *SyncService) HydrateState(ctx context.Context) error {
	customers, err := s.source.ListCustomers(ctx)
	if err != nil {
		return err
	}

	s.state.Hydrate(customers)
	logger.Info().Int("processed_orders", s.state.Count()).Msg("Hydrated sync state from digital menu")
	return nil
}

// SyncOrders runs one full sync pass: ingestion of unsynced orders followed
// by status reconciliation of synced ones. It returns the combined count of
// newly ingested and updated orders. A failure on one order is logged and
// skipped; only an unreachable external source fails the whole pass.
func (s *SyncService) SyncOrders(ctx context.Context) (int, error) {
	customers, err := s.source.ListCustomers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing digital menu customers")
		return 0, err
	}

	newCount := 0
	for _, cust := range customers {
		for _, ord := range cust.Orders {
			// Double-check the flag itself, not just the in-memory set.
			if ord.SyncedToPOS || s.state.IsProcessed(ord.ID) {
				continue
			}

			status := entity.NormalizeStatus(ord.Status)
			if status != entity.ExternalStatusPending && status != entity.ExternalStatusConfirmed {
				continue
			}

			posOrderID, err := s.ingestOrder(ctx, cust, ord)
			if err != nil {
				logger.Error().Err(err).Str("external_order_id", ord.ID).Msg("Error ingesting digital menu order")
				continue
			}

			newCount++
			s.publish(ctx, EventMenuOrderSynced, map[string]interface{}{
				"external_order_id": ord.ID,
				"pos_order_id":      posOrderID,
			})
		}
	}

	updatedCount := 0
	for _, cust := range customers {
		for _, ord := range cust.Orders {
			if !ord.SyncedToPOS {
				continue
			}

			changed, err := s.reconcileOrder(ctx, cust, ord)
			if err != nil {
				logger.Error().Err(err).Str("external_order_id", ord.ID).Msg("Error reconciling digital menu order")
				continue
			}

			if changed {
				updatedCount++
				s.publish(ctx, EventMenuOrderUpdated, map[string]interface{}{
					"external_order_id": ord.ID,
					"pos_order_id":      ord.POSOrderID,
					"status":            entity.NormalizeStatus(ord.Status),
				})
			}
		}
	}

	s.publish(ctx, EventMenuBatchSynced, map[string]interface{}{
		"new":     newCount,
		"updated": updatedCount,
	})

	if newCount > 0 || updatedCount > 0 {
		logger.Info().Int("new", newCount).Int("updated", updatedCount).Msg("Digital menu sync pass complete")
	}

	return newCount + updatedCount, nil
}

// publish sends an event and logs failures instead of propagating them.
func (s *SyncService) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		logger.Error().Err(err).Str("event", eventType).Msg("Error publishing event")
	}
}
