package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publisher pushes externally observable changes to UI observers. Publishing
// is fire-and-forget from the engine's point of view; failures are logged
// and never block a sync pass.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Event types published by the sync engine.
const (
	EventOrderCreated     = "order_created"
	EventOrderItemAdded   = "order_item_added"
	EventTableUpdated     = "table_updated"
	EventOrderPaid        = "order_paid"
	EventInvoiceCreated   = "invoice_created"
	EventMenuOrderSynced  = "digital_menu_order_synced"
	EventMenuOrderUpdated = "digital_menu_order_updated"
	EventMenuBatchSynced  = "digital_menu_synced"
)

// KafkaPublisher publishes engine events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":   eventType,
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %v", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(eventType),
		Value: body,
	}

	return p.writer.WriteMessages(ctx, msg)
}
