package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domorder "example.com/orderflow/internal/domain/order"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func sampleOrder() *domorder.Order {
	return &domorder.Order{
		ID:       "O1",
		Customer: domcustomer.Customer{ID: "C1", Email: "ana@example.com"},
		Products: []domorder.OrderProduct{
			{ID: "OP1", OrderID: "O1", ProductID: "P1", Price: decimal.NewFromInt(10), Quantity: 3},
			{ID: "OP2", OrderID: "O1", ProductID: "P2", Price: decimal.NewFromInt(20), Quantity: 2},
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublisher_OrderCreated(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "orders", quietLogger())

	require.NoError(t, p.OrderCreated(context.Background(), sampleOrder()))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	require.Equal(t, "orders", sent.exchange)
	require.Equal(t, RoutingKeyOrderCreated, sent.key)
	require.Equal(t, "application/json", sent.msg.ContentType)
	require.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)

	var evt OrderCreatedEvent
	require.NoError(t, json.Unmarshal(sent.msg.Body, &evt))
	require.Equal(t, sent.msg.MessageId, evt.EventID)
	require.Equal(t, "O1", evt.OrderID)
	require.Equal(t, "C1", evt.CustomerID)
	require.Equal(t, "70.00", evt.Total)
	require.Equal(t, []OrderLine{
		{ProductID: "P1", Price: "10.00", Quantity: 3, Subtotal: "30.00"},
		{ProductID: "P2", Price: "20.00", Quantity: 2, Subtotal: "40.00"},
	}, evt.Lines)
}

func TestPublisher_OrderCreated_PublishError(t *testing.T) {
	brokerErr := errors.New("channel closed")
	p := NewPublisher(&fakeChannel{err: brokerErr}, "orders", quietLogger())

	err := p.OrderCreated(context.Background(), sampleOrder())

	require.ErrorIs(t, err, brokerErr)
}

func TestPublisher_CloseWithoutConnection(t *testing.T) {
	p := NewPublisher(&fakeChannel{}, "orders", quietLogger())
	require.NoError(t, p.Close())
}
