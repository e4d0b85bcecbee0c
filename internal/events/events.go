// Package events publishes marketplace lifecycle events over NATS so
// downstream consumers (email, analytics) can react without coupling to
// the API process. Publishing is fire and forget: a broker outage never
// fails the request that produced the event.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

// Subjects for published events.
const (
	SubjectOrderCreated       = "order.created"
	SubjectOrderStatusChanged = "order.status_changed"
)

// OrderCreated is emitted after an order commits.
type OrderCreated struct {
	OrderID     uuid.UUID   `json:"order_id"`
	UserID      uuid.UUID   `json:"user_id"`
	TotalAmount money.Cents `json:"total_amount"`
	ItemCount   int         `json:"item_count"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderStatusChanged is emitted after a status transition commits.
type OrderStatusChanged struct {
	OrderID   uuid.UUID          `json:"order_id"`
	From      domain.OrderStatus `json:"from"`
	To        domain.OrderStatus `json:"to"`
	ChangedAt time.Time          `json:"changed_at"`
}

// Publisher writes events to NATS. A nil Publisher is valid and drops
// everything, which keeps the broker optional in development.
type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewPublisher connects to the NATS server at url. An empty url returns
// a nil publisher, disabling events.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, logger: logger}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// OrderCreated publishes an order.created event.
func (p *Publisher) OrderCreated(ev OrderCreated) {
	p.publish(SubjectOrderCreated, ev)
}

// OrderStatusChanged publishes an order.status_changed event.
func (p *Publisher) OrderStatusChanged(ev OrderStatusChanged) {
	p.publish(SubjectOrderStatusChanged, ev)
}

func (p *Publisher) publish(subject string, payload any) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to encode event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
