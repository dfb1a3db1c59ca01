// Package events publishes order lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	domorder "example.com/orderflow/internal/domain/order"
)

const RoutingKeyOrderCreated = "order.created"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// OrderCreatedEvent is the JSON body published under order.created.
type OrderCreatedEvent struct {
	EventID    string      `json:"event_id"`
	OrderID    string      `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	Lines      []OrderLine `json:"lines"`
	Total      string      `json:"total"`
	CreatedAt  time.Time   `json:"created_at"`
}

func NewOrderCreatedEvent(o *domorder.Order) OrderCreatedEvent {
	lines := make([]OrderLine, 0, len(o.Products))
	for _, p := range o.Products {
		lines = append(lines, OrderLine{
			ProductID: p.ProductID,
			Price:     p.Price.StringFixed(2),
			Quantity:  p.Quantity,
			Subtotal:  p.Subtotal().StringFixed(2),
		})
	}
	return OrderCreatedEvent{
		EventID:    uuid.NewString(),
		OrderID:    o.ID,
		CustomerID: o.Customer.ID,
		Lines:      lines,
		Total:      o.Total().StringFixed(2),
		CreatedAt:  o.CreatedAt,
	}
}

type Publisher struct {
	ch       channel
	exchange string
	log      logrus.FieldLogger
	close    func() error
}

func NewPublisher(ch channel, exchange string, log logrus.FieldLogger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, log: log, close: func() error { return nil }}
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange string, log logrus.FieldLogger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange, log)
	p.close = func() error {
		if err := ch.Close(); err != nil {
			log.WithError(err).Warn("closing amqp channel")
		}
		return conn.Close()
	}
	return p, nil
}

func (p *Publisher) OrderCreated(ctx context.Context, o *domorder.Order) error {
	evt := NewOrderCreatedEvent(o)
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyOrderCreated, false, false, amqp.Publishing{
		MessageId:    evt.EventID,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         RoutingKeyOrderCreated,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingKeyOrderCreated, err)
	}

	p.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"event_id": evt.EventID,
	}).Debug("order event published")
	return nil
}

func (p *Publisher) Close() error {
	return p.close()
}
