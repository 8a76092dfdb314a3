package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// totalTolerance is the allowed gap between the digital menu's declared
// total and the locally computed one before a mismatch warning is logged.
const totalTolerance = 0.01

// ingestOrder converts a not-yet-synced external order into a POS order plus
// items, resolves the physical table, and marks the external record synced.
// The external record is stamped last, so a crash mid-ingest is retried on
// the next pass.
func (s *SyncService) ingestOrder(ctx context.Context, cust entity.Customer, ord entity.ExternalOrder) (int, error) {
	table := s.resolveTable(ctx, ord.TableNumber, ord.FloorNumber)

	if table != nil && table.Status == entity.TableStatusFree {
		if err := s.repo.UpdateTableStatus(ctx, table.ID, entity.TableStatusOccupied); err != nil {
			logger.Error().Err(err).Int("table_id", table.ID).Msg("Error occupying table")
		} else {
			s.publish(ctx, EventTableUpdated, map[string]interface{}{
				"table_id": table.ID,
				"status":   entity.TableStatusOccupied,
			})
		}
	}

	status := entity.OrderStatusSentToKitchen
	if entity.NormalizeStatus(ord.PaymentStatus) == entity.PaymentStatusPaid {
		status = entity.OrderStatusBilled
	}

	order := &entity.Order{
		OrderType:     entity.OrderTypeDineIn,
		CustomerName:  cust.CustomerName,
		CustomerPhone: cust.CustomerPhone,
		PaymentMode:   paymentMode(ord),
		Status:        status,
		Total:         ord.Total,
	}
	if table != nil {
		tableID := table.ID
		order.TableID = &tableID
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("create order: %v", err)
	}
	s.publish(ctx, EventOrderCreated, created)

	if table != nil {
		if err := s.repo.UpdateTableOrder(ctx, table.ID, &created.ID); err != nil {
			logger.Error().Err(err).Int("table_id", table.ID).Msg("Error linking table to order")
		}
		if _, err := s.projectTableStatus(ctx, table.ID, created.ID); err != nil {
			logger.Error().Err(err).Int("table_id", table.ID).Msg("Error projecting table status")
		}
	}

	subtotal := 0.0
	for _, line := range ord.Items {
		item, err := s.buildOrderItem(ctx, created.ID, line)
		if err != nil {
			logger.Error().Err(err).Str("item", line.Name).Msg("Error creating order item")
			continue
		}
		s.publish(ctx, EventOrderItemAdded, item)
		subtotal += line.Price * float64(line.Quantity)
	}

	// The declared total stays authoritative; a mismatch is surfaced, never
	// auto-corrected.
	if computed := subtotal + ord.Tax; math.Abs(computed-ord.Total) > totalTolerance {
		logger.Warn().
			Str("external_order_id", ord.ID).
			Float64("declared_total", ord.Total).
			Float64("computed_total", computed).
			Msg("Digital menu order total mismatch")
	}
	if err := s.repo.UpdateOrderTotal(ctx, created.ID, ord.Total); err != nil {
		logger.Error().Err(err).Int("order_id", created.ID).Msg("Error updating order total")
	}

	if err := s.source.SetTableStatus(ctx, cust.ID, entity.TableStatusOccupied); err != nil {
		logger.Error().Err(err).Str("customer", cust.CustomerID).Msg("Error updating customer table status")
	}

	if err := s.source.MarkOrderSynced(ctx, cust.ID, ord.ID, strconv.Itoa(created.ID), time.Now()); err != nil {
		return 0, fmt.Errorf("mark order synced: %v", err)
	}

	// Only now, after the flag write succeeded, does the order count as
	// processed in memory.
	s.state.MarkProcessed(ord.ID)
	s.state.Observe(ord.ID, ord.Status, ord.PaymentStatus)

	return created.ID, nil
}

// resolveTable finds the physical table for an external order's table number,
// preferring a table on the named floor when a floor label is given. No
// match is non-fatal; the order is simply created without a table link.
func (s *SyncService) resolveTable(ctx context.Context, tableNumber, floorLabel string) *entity.Table {
	if tableNumber == "" {
		return nil
	}

	tables, err := s.repo.GetTables(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading tables")
		return nil
	}

	var matches []entity.Table
	for _, t := range tables {
		if t.Number == strings.TrimSpace(tableNumber) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		logger.Warn().Str("table_number", tableNumber).Msg("No table matches digital menu order")
		return nil
	}

	if floorLabel != "" {
		floors, err := s.repo.GetFloors(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Error loading floors")
		} else {
			for _, f := range floors {
				if !strings.EqualFold(f.Name, strings.TrimSpace(floorLabel)) {
					continue
				}
				for i := range matches {
					if matches[i].FloorID == f.ID {
						return &matches[i]
					}
				}
			}
		}
	}

	if len(matches) > 1 {
		logger.Warn().
			Str("table_number", tableNumber).
			Int("matches", len(matches)).
			Msg("Ambiguous table number across floors, using first match")
	}
	return &matches[0]
}

// buildOrderItem creates one POS order item from an external line. A menu
// catalog miss still creates the item against the unknown placeholder.
func (s *SyncService) buildOrderItem(ctx context.Context, orderID int, line entity.ExternalOrderItem) (*entity.OrderItem, error) {
	menuItemID := entity.UnknownMenuItemID
	isVeg := true
	if menuItem := s.menuItemByName(ctx, line.Name); menuItem != nil {
		menuItemID = menuItem.ID
		isVeg = menuItem.IsVegetarian
	}

	notes := line.Notes
	if line.SpiceLevel != "" {
		if notes != "" {
			notes += ", "
		}
		notes += "Spice: " + line.SpiceLevel
	}

	item := &entity.OrderItem{
		OrderID:      orderID,
		MenuItemID:   menuItemID,
		Name:         line.Name,
		Quantity:     line.Quantity,
		Price:        line.Price,
		IsVegetarian: isVeg,
		Notes:        notes,
		Status:       entity.ItemStatusNew,
	}

	return s.repo.CreateOrderItem(ctx, item)
}

// menuItemByName resolves a menu item by case-insensitive name, going
// through the redis catalog cache when one is configured. A miss returns nil.
func (s *SyncService) menuItemByName(ctx context.Context, name string) *entity.MenuItem {
	cacheKey := "menu-item:" + strings.ToLower(strings.TrimSpace(name))

	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil && data != "" {
			item := &entity.MenuItem{}
			if err := json.Unmarshal([]byte(data), item); err == nil {
				return item
			}
		}
	}

	items, err := s.repo.GetMenuItems(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading menu items")
		return nil
	}

	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			if s.rdb != nil {
				if data, err := json.Marshal(items[i]); err == nil {
					s.rdb.Set(ctx, cacheKey, data, time.Hour)
				}
			}
			return &items[i]
		}
	}

	logger.Warn().Str("item", name).Msg("Menu item not found in catalog")
	return nil
}

// paymentMode returns the external order's declared payment method,
// lower-cased, defaulting to cash.
func paymentMode(ord entity.ExternalOrder) string {
	mode := strings.ToLower(strings.TrimSpace(ord.PaymentMethod))
	if mode == "" {
		mode = "cash"
	}
	return mode
}
