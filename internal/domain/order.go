package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/money"
)

// Order statuses. Transitions are monotonic along
// PENDING → PAID → SHIPPED → DELIVERED; CANCELLED is reachable from
// PENDING only. DELIVERED and CANCELLED are terminal.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order-related domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrOrderNotPending   = &Error{Code: ECONFLICT, Message: "Order is not pending"}
	ErrInsufficientStock = &Error{Code: ECONFLICT, Message: "Insufficient stock for one or more items"}
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// transitions is the order lifecycle state machine.
var transitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPaid, OrderCancelled},
	OrderPaid:      {OrderShipped},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are defined from s.
func Terminal(s OrderStatus) bool {
	return len(transitions[s]) == 0
}

// Order is an immutable record of a completed checkout. Only Status
// changes after creation; TotalAmount is a creation-time snapshot and
// is never recomputed.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	TotalAmount money.Cents `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OrderItem is a frozen line item. StickerName and Price are snapshots
// taken at order time; later catalog edits never touch them.
type OrderItem struct {
	ID          uuid.UUID   `json:"id"`
	OrderID     uuid.UUID   `json:"orderId"`
	StickerID   uuid.UUID   `json:"stickerId"`
	StickerName string      `json:"stickerName"`
	Quantity    int32       `json:"quantity"`
	Price       money.Cents `json:"price"`
}

// OrderDetail aggregates an order with its items.
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
