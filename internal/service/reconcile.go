package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// reconcileOrder converges an already-synced external order with its POS
// counterpart. It reports whether any reconciliation action was taken.
func (s *SyncService) reconcileOrder(ctx context.Context, cust entity.Customer, ord entity.ExternalOrder) (bool, error) {
	status := entity.NormalizeStatus(ord.Status)
	payment := entity.NormalizeStatus(ord.PaymentStatus)

	// Payment signal takes precedence over ordinary diffing: it must route
	// to auto-checkout even when no diff was recorded, which also self-heals
	// a transition missed while the engine was down.
	if (entity.IsInvoiceGenerated(ord.PaymentStatus) || entity.IsInvoiceGenerated(ord.Status)) && ord.POSOrderID != "" {
		done, err := s.autoCheckout(ctx, cust, ord)
		if err != nil {
			return false, err
		}
		s.state.MarkProcessed(ord.ID)
		s.state.Observe(ord.ID, status, payment)
		return done, nil
	}

	lastStatus, lastPayment, ok := s.state.LastObserved(ord.ID)
	if !ok {
		// First observation after a restart: seed, don't treat as a
		// transition.
		s.state.MarkProcessed(ord.ID)
		s.state.Observe(ord.ID, status, payment)
		return false, nil
	}

	if status == lastStatus && payment == lastPayment {
		return false, nil
	}

	target, mapped := entity.MapExternalToItemStatus(ord.Status)
	if mapped && ord.POSOrderID != "" {
		posOrderID, err := strconv.Atoi(ord.POSOrderID)
		if err != nil {
			return false, fmt.Errorf("invalid pos order id %q: %v", ord.POSOrderID, err)
		}

		if err := s.applyItemStatus(ctx, posOrderID, target); err != nil {
			return false, err
		}

		if err := s.projectOrder(ctx, cust, posOrderID); err != nil {
			logger.Error().Err(err).Int("order_id", posOrderID).Msg("Error projecting order status")
		}
	}

	s.state.Observe(ord.ID, status, payment)
	return true, nil
}

// applyItemStatus pushes the target status onto every item of the POS order
// whose current status differs. Items already matching are skipped to avoid
// redundant writes and events.
func (s *SyncService) applyItemStatus(ctx context.Context, orderID int, target string) error {
	items, err := s.repo.GetOrderItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order items: %v", err)
	}

	for _, item := range items {
		if item.Status == target {
			continue
		}
		if err := s.repo.UpdateOrderItemStatus(ctx, item.ID, target); err != nil {
			logger.Error().Err(err).Int("item_id", item.ID).Msg("Error updating order item status")
			continue
		}
	}

	return nil
}

// projectOrder writes the item-derived status onto the POS table and the
// external customer record.
func (s *SyncService) projectOrder(ctx context.Context, cust entity.Customer, posOrderID int) error {
	order, err := s.repo.GetOrder(ctx, posOrderID)
	if err != nil {
		return err
	}

	var status string
	if order.TableID != nil {
		status, err = s.projectTableStatus(ctx, *order.TableID, posOrderID)
		if err != nil {
			return err
		}
	} else {
		items, err := s.repo.GetOrderItems(ctx, posOrderID)
		if err != nil {
			return err
		}
		status = DeriveTableStatus(items)
	}

	return s.source.SetTableStatus(ctx, cust.ID, status)
}
