package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

// Invoice is the structured billing document for a finalized order.
// Rendering (PDF, email) is left to consumers of this data.
type Invoice struct {
	Number      string        `json:"number"`
	OrderID     uuid.UUID     `json:"order_id"`
	UserID      uuid.UUID     `json:"user_id"`
	IssuedAt    string        `json:"issued_at"`
	Lines       []InvoiceLine `json:"lines"`
	TotalAmount money.Cents   `json:"total_amount"`
}

// InvoiceLine is one billed position on an invoice.
type InvoiceLine struct {
	Description string      `json:"description"`
	Quantity    int32       `json:"quantity"`
	UnitPrice   money.Cents `json:"unit_price"`
	LineTotal   money.Cents `json:"line_total"`
}

// InvoiceService builds invoices for paid orders.
type InvoiceService interface {
	// GetInvoice returns the invoice for one of the user's orders.
	// Only orders that reached PAID or beyond carry an invoice.
	GetInvoice(ctx context.Context, userID, orderID uuid.UUID) (*Invoice, error)
}

type invoiceService struct {
	orders OrderService
}

// NewInvoiceService creates a new InvoiceService instance.
func NewInvoiceService(orders OrderService) InvoiceService {
	return &invoiceService{orders: orders}
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID, orderID uuid.UUID) (*Invoice, error) {
	detail, err := s.orders.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	switch detail.Order.Status {
	case domain.OrderPaid, domain.OrderShipped, domain.OrderDelivered:
	default:
		return nil, domain.Conflict("invoice.get", "invoice is only available once the order is paid")
	}

	inv := &Invoice{
		Number:      InvoiceNumber(detail.Order),
		OrderID:     detail.Order.ID,
		UserID:      detail.Order.UserID,
		IssuedAt:    detail.Order.CreatedAt.UTC().Format("2006-01-02"),
		TotalAmount: detail.Order.TotalAmount,
	}
	for _, it := range detail.Items {
		inv.Lines = append(inv.Lines, InvoiceLine{
			Description: it.StickerName,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			LineTotal:   it.Price.Mul(it.Quantity),
		})
	}
	return inv, nil
}

// InvoiceNumber derives a stable invoice number from the order. The
// order id suffix keeps numbers unique without another sequence.
func InvoiceNumber(order domain.Order) string {
	suffix := order.ID.String()[:8]
	return fmt.Sprintf("INV-%s-%s", order.CreatedAt.UTC().Format("20060102"), suffix)
}
