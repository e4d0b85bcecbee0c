package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/money"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// Charge captures payment for an order. A nil error means the full
	// amount was collected.
	Charge(ctx context.Context, params ChargeParams) (*Charge, error)

	// Refund returns a previously captured charge.
	Refund(ctx context.Context, chargeID string) error
}

// ChargeParams contains parameters for capturing a payment.
type ChargeParams struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Amount  money.Cents
}

// Charge represents a captured payment.
type Charge struct {
	ID        string
	OrderID   uuid.UUID
	Amount    money.Cents
	CreatedAt time.Time
}
