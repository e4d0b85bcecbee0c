package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// SimulatedProvider is an in-process Provider that always succeeds.
// It stands in for a real gateway integration and keeps charges in
// memory so tests and local development can inspect them.
type SimulatedProvider struct {
	mu      sync.Mutex
	charges map[string]*Charge
}

// NewSimulatedProvider creates a new SimulatedProvider.
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{charges: make(map[string]*Charge)}
}

// Charge records a successful payment for the order.
func (p *SimulatedProvider) Charge(ctx context.Context, params ChargeParams) (*Charge, error) {
	if params.Amount < 0 {
		return nil, domain.Invalid("billing.charge", "charge amount cannot be negative")
	}

	charge := &Charge{
		ID:        fmt.Sprintf("ch_sim_%s", uuid.New().String()),
		OrderID:   params.OrderID,
		Amount:    params.Amount,
		CreatedAt: time.Now().UTC(),
	}

	p.mu.Lock()
	p.charges[charge.ID] = charge
	p.mu.Unlock()

	return charge, nil
}

// Refund forgets a previously recorded charge.
func (p *SimulatedProvider) Refund(ctx context.Context, chargeID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.charges[chargeID]; !ok {
		return domain.NotFound("billing.refund", "charge", chargeID)
	}
	delete(p.charges, chargeID)
	return nil
}

// ChargeCount reports how many charges the provider has captured.
func (p *SimulatedProvider) ChargeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.charges)
}
