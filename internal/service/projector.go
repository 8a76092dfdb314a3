package service

import (
	"context"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// DeriveTableStatus reduces the full set of an order's item statuses to one
// human-meaningful table status:
//
//	all served                          -> served
//	all ready or served, >=1 ready      -> ready
//	any preparing or ready              -> preparing
//	otherwise                           -> occupied
//
// An order with no items yet is simply occupied.
func DeriveTableStatus(items []entity.OrderItem) string {
	if len(items) == 0 {
		return entity.TableStatusOccupied
	}

	allServed := true
	allReadyOrServed := true
	anyReady := false
	anyPreparing := false

	for _, item := range items {
		switch item.Status {
		case entity.ItemStatusServed:
		case entity.ItemStatusReady:
			allServed = false
			anyReady = true
		case entity.ItemStatusPreparing:
			allServed = false
			allReadyOrServed = false
			anyPreparing = true
		default:
			allServed = false
			allReadyOrServed = false
		}
	}

	switch {
	case allServed:
		return entity.TableStatusServed
	case allReadyOrServed && anyReady:
		return entity.TableStatusReady
	case anyPreparing || anyReady:
		return entity.TableStatusPreparing
	default:
		return entity.TableStatusOccupied
	}
}

// projectTableStatus recomputes the derived status of a table from its
// current order's items and writes it to the table, publishing table_updated.
func (s *SyncService) projectTableStatus(ctx context.Context, tableID, orderID int) (string, error) {
	items, err := s.repo.GetOrderItems(ctx, orderID)
	if err != nil {
		return "", err
	}

	status := DeriveTableStatus(items)
	if err := s.repo.UpdateTableStatus(ctx, tableID, status); err != nil {
		return "", err
	}

	s.publish(ctx, EventTableUpdated, map[string]interface{}{
		"table_id": tableID,
		"status":   status,
	})

	return status, nil
}
