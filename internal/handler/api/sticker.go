package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
	"github.com/stickervalley/stickervalley/internal/service"
)

// StickerHandler serves the public catalog and vendor listing management.
type StickerHandler struct {
	stickers service.StickerService
	logger   *slog.Logger
}

// NewStickerHandler creates a new sticker handler.
func NewStickerHandler(stickers service.StickerService, logger *slog.Logger) *StickerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StickerHandler{stickers: stickers, logger: logger}
}

type stickerRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=5000"`
	Price       money.Cents `json:"price"`
	Stock       int32       `json:"stock" validate:"gte=0"`
	Type        string      `json:"type" validate:"required,oneof=DIGITAL PHYSICAL"`
	ImageURL    string      `json:"image_url" validate:"omitempty,url"`
}

func (req stickerRequest) input() service.StickerInput {
	return service.StickerInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Type:        req.Type,
		ImageURL:    req.ImageURL,
	}
}

// Create handles POST /api/v1/shops/{shopID}/stickers.
func (h *StickerHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req stickerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	sticker, err := h.stickers.CreateSticker(r.Context(), user, shopID, req.input())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, sticker)
}

// List handles GET /api/v1/stickers with filter query parameters.
func (h *StickerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStickerFilter(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	stickers, err := h.stickers.ListStickers(r.Context(), filter)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"stickers": stickers})
}

// Get handles GET /api/v1/stickers/{stickerID}.
func (h *StickerHandler) Get(w http.ResponseWriter, r *http.Request) {
	stickerID, err := PathUUID(r, "stickerID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	sticker, err := h.stickers.GetSticker(r.Context(), stickerID)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, sticker)
}

// Update handles PUT /api/v1/stickers/{stickerID}.
func (h *StickerHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	stickerID, err := PathUUID(r, "stickerID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	var req stickerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	sticker, err := h.stickers.UpdateSticker(r.Context(), user, stickerID, req.input())
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, sticker)
}

// Delete handles DELETE /api/v1/stickers/{stickerID}.
func (h *StickerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	stickerID, err := PathUUID(r, "stickerID")
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if err := h.stickers.DeleteSticker(r.Context(), user, stickerID); err != nil {
		WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseStickerFilter(r *http.Request) (domain.StickerFilter, error) {
	var filter domain.StickerFilter
	q := r.URL.Query()

	if v := q.Get("shop_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, domain.Invalid("sticker.list", "invalid shop_id: must be a UUID")
		}
		filter.ShopID = id
	}
	filter.Type = q.Get("type")
	filter.Search = q.Get("q")

	if v := q.Get("min_price"); v != "" {
		p, err := money.Parse(v)
		if err != nil {
			return filter, domain.Invalid("sticker.list", "invalid min_price")
		}
		filter.MinPrice = &p
	}
	if v := q.Get("max_price"); v != "" {
		p, err := money.Parse(v)
		if err != nil {
			return filter, domain.Invalid("sticker.list", "invalid max_price")
		}
		filter.MaxPrice = &p
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return filter, domain.Invalid("sticker.list", "invalid limit")
		}
		filter.Limit = int32(n)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return filter, domain.Invalid("sticker.list", "invalid offset")
		}
		filter.Offset = int32(n)
	}

	return filter, nil
}
