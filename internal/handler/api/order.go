package api

import (
	"log/slog"
	"net/http"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/service"
)

// OrderHandler serves order placement and the order lifecycle.
type OrderHandler struct {
	orders   service.OrderService
	invoices service.InvoiceService
	logger   *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, invoices service.InvoiceService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{orders: orders, invoices: invoices, logger: logger}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PlaceOrder handles POST /api/v1/orders.
// The user's cart becomes a PENDING order; the cart empties on success.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	detail, err := h.orders.PlaceOrder(r.Context(), user.ID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, detail)
}

// ListOrders handles GET /api/v1/orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), user.ID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	orderID, err := PathUUID(r, "orderID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	detail, err := h.orders.GetOrder(r.Context(), user.ID, orderID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, detail)
}

// Pay handles POST /api/v1/orders/{orderID}/pay.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	orderID, err := PathUUID(r, "orderID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.Pay(r.Context(), user.ID, orderID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/v1/orders/{orderID}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	orderID, err := PathUUID(r, "orderID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.Cancel(r.Context(), user.ID, orderID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/v1/orders/{orderID}/status.
// Admin-only fulfillment path: PAID to SHIPPED, SHIPPED to DELIVERED.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := PathUUID(r, "orderID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req updateOrderStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// GetInvoice handles GET /api/v1/orders/{orderID}/invoice.
func (h *OrderHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	orderID, err := PathUUID(r, "orderID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	invoice, err := h.invoices.GetInvoice(r.Context(), user.ID, orderID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, invoice)
}
