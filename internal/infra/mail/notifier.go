// Package mail sends order confirmation emails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	domorder "example.com/orderflow/internal/domain/order"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Notifier struct {
	addr string
	from string
	send SendFunc
	log  logrus.FieldLogger
}

func NewNotifier(addr, from string, log logrus.FieldLogger) *Notifier {
	return &Notifier{addr: addr, from: from, send: smtp.SendMail, log: log}
}

// WithSender swaps the transport, mostly for tests.
func (n *Notifier) WithSender(send SendFunc) *Notifier {
	n.send = send
	return n
}

func (n *Notifier) OrderCreated(ctx context.Context, o *domorder.Order) error {
	to := o.Customer.Email
	if to == "" {
		n.log.WithField("order_id", o.ID).Debug("customer has no email, skipping confirmation")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := n.send(n.addr, nil, n.from, []string{to}, n.message(o)); err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	n.log.WithFields(logrus.Fields{"order_id": o.ID, "to": to}).Info("order confirmation sent")
	return nil
}

func (n *Notifier) message(o *domorder.Order) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", o.Customer.Email)
	fmt.Fprintf(&b, "Subject: Order %s confirmed\r\n", o.ID)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	if o.Customer.Name != "" {
		fmt.Fprintf(&b, "Hi %s,\r\n\r\n", o.Customer.Name)
	}
	fmt.Fprintf(&b, "Thanks for your order %s.\r\n\r\n", o.ID)
	for _, p := range o.Products {
		fmt.Fprintf(&b, "  %s x%d @ %s = %s\r\n",
			p.ProductID, p.Quantity, p.Price.StringFixed(2), p.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\r\nTotal: %s\r\n", o.Total().StringFixed(2))
	return b.Bytes()
}
