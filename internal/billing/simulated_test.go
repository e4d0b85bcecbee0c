package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

func TestSimulatedCharge(t *testing.T) {
	p := NewSimulatedProvider()
	orderID := uuid.New()

	charge, err := p.Charge(context.Background(), ChargeParams{
		OrderID: orderID,
		UserID:  uuid.New(),
		Amount:  money.MustParse("9.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, orderID, charge.OrderID)
	assert.Equal(t, money.MustParse("9.50"), charge.Amount)
	assert.NotEmpty(t, charge.ID)
	assert.Equal(t, 1, p.ChargeCount())
}

func TestSimulatedChargeNegativeAmount(t *testing.T) {
	p := NewSimulatedProvider()

	_, err := p.Charge(context.Background(), ChargeParams{Amount: -1})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, 0, p.ChargeCount())
}

func TestSimulatedRefund(t *testing.T) {
	p := NewSimulatedProvider()

	charge, err := p.Charge(context.Background(), ChargeParams{
		OrderID: uuid.New(),
		Amount:  money.MustParse("3.00"),
	})
	require.NoError(t, err)

	require.NoError(t, p.Refund(context.Background(), charge.ID))
	assert.Equal(t, 0, p.ChargeCount())

	err = p.Refund(context.Background(), charge.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
