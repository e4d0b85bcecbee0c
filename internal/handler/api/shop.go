package api

import (
	"log/slog"
	"net/http"

	"github.com/stickervalley/stickervalley/internal/service"
)

// ShopHandler serves vendor shop management and the public shop list.
type ShopHandler struct {
	shops  service.ShopService
	logger *slog.Logger
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(shops service.ShopService, logger *slog.Logger) *ShopHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopHandler{shops: shops, logger: logger}
}

type shopRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

// Create handles POST /api/v1/shops.
func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req shopRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	shop, err := h.shops.CreateShop(r.Context(), user, req.Name, req.Description)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, shop)
}

// List handles GET /api/v1/shops.
func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shops.ListShops(r.Context())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"shops": shops})
}

// Get handles GET /api/v1/shops/{shopID}.
func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID, err := PathUUID(r, "shopID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	shop, err := h.shops.GetShop(r.Context(), shopID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, shop)
}

// GetBySlug handles GET /api/v1/shops/by-slug/{slug}.
func (h *ShopHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	shop, err := h.shops.GetShopBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, shop)
}

// Update handles PUT /api/v1/shops/{shopID}.
func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	shopID, err := PathUUID(r, "shopID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req shopRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	shop, err := h.shops.UpdateShop(r.Context(), user, shopID, req.Name, req.Description)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, shop)
}

// Delete handles DELETE /api/v1/shops/{shopID}.
func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	shopID, err := PathUUID(r, "shopID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.shops.DeleteShop(r.Context(), user, shopID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
