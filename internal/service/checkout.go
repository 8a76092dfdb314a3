package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ANIKETPROJECTS/RestrauntPOSV6-sub000/internal/entity"
)

// taxRate applied on auto-checkout.
const taxRate = 0.05

// autoCheckout completes billing for a POS order whose external counterpart
// signalled payment: checkout, table freeing, invoice issuance. It reports
// whether the checkout actually ran; an order already in a terminal state is
// a no-op, which is what makes repeated invoice_generated observations safe.
func (s *SyncService) autoCheckout(ctx context.Context, cust entity.Customer, ord entity.ExternalOrder) (bool, error) {
	posOrderID, err := strconv.Atoi(ord.POSOrderID)
	if err != nil {
		return false, fmt.Errorf("invalid pos order id %q: %v", ord.POSOrderID, err)
	}

	order, err := s.repo.GetOrder(ctx, posOrderID)
	if err != nil {
		return false, fmt.Errorf("load order %d: %v", posOrderID, err)
	}

	if order.Status == entity.OrderStatusBilled || order.Status == entity.OrderStatusPaid {
		return false, nil
	}

	items, err := s.repo.GetOrderItems(ctx, posOrderID)
	if err != nil {
		return false, fmt.Errorf("load order items: %v", err)
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	tax := subtotal * taxRate
	total := subtotal + tax

	mode := paymentMode(ord)
	if err := s.repo.CheckoutOrder(ctx, posOrderID, mode); err != nil {
		logger.Error().Err(err).Int("order_id", posOrderID).Msg("Error checking out order")
		return false, nil
	}

	if order.TableID != nil {
		if err := s.repo.UpdateTableOrder(ctx, *order.TableID, nil); err != nil {
			logger.Error().Err(err).Int("table_id", *order.TableID).Msg("Error clearing table order link")
		}
		if err := s.repo.UpdateTableStatus(ctx, *order.TableID, entity.TableStatusFree); err != nil {
			logger.Error().Err(err).Int("table_id", *order.TableID).Msg("Error freeing table")
		} else {
			s.publish(ctx, EventTableUpdated, map[string]interface{}{
				"table_id": *order.TableID,
				"status":   entity.TableStatusFree,
			})
		}
	}

	if err := s.source.SetTableStatusByPhone(ctx, cust.CustomerPhone, entity.TableStatusFree); err != nil {
		logger.Error().Err(err).Str("phone", cust.CustomerPhone).Msg("Error updating customer table status")
	}

	s.publish(ctx, EventOrderPaid, map[string]interface{}{
		"order_id":     posOrderID,
		"payment_mode": mode,
		"total":        total,
	})

	invoice, err := s.issueInvoice(ctx, posOrderID, mode, subtotal, tax, total, items)
	if err != nil {
		logger.Error().Err(err).Int("order_id", posOrderID).Msg("Error creating invoice")
		return true, nil
	}
	s.publish(ctx, EventInvoiceCreated, invoice)

	logger.Info().
		Int("order_id", posOrderID).
		Str("invoice_number", invoice.InvoiceNumber).
		Float64("total", total).
		Msg("Auto-checkout complete")

	return true, nil
}

// issueInvoice creates the invoice with a serialized snapshot of the order
// items. Numbering is sequential over the existing invoice count.
func (s *SyncService) issueInvoice(ctx context.Context, orderID int, mode string, subtotal, tax, total float64, items []entity.OrderItem) (*entity.Invoice, error) {
	invoices, err := s.repo.GetInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("count invoices: %v", err)
	}

	snapshot := make([]entity.InvoiceItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, entity.InvoiceItem{
			Name:         item.Name,
			Quantity:     item.Quantity,
			Price:        item.Price,
			IsVegetarian: item.IsVegetarian,
			Notes:        item.Notes,
		})
	}
	itemsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice items: %v", err)
	}

	invoice := &entity.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%05d", len(invoices)+1),
		OrderID:       orderID,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		PaymentMode:   mode,
		Status:        "Paid",
		ItemsJSON:     string(itemsJSON),
	}

	return s.repo.CreateInvoice(ctx, invoice)
}
