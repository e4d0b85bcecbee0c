package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/money"
)

// StickerStore is the persistence surface the sticker service needs.
type StickerStore interface {
	CreateSticker(ctx context.Context, st *domain.Sticker) (*domain.Sticker, error)
	GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error)
	ListStickers(ctx context.Context, filter domain.StickerFilter) ([]domain.Sticker, error)
	UpdateSticker(ctx context.Context, st *domain.Sticker) error
	DeleteSticker(ctx context.Context, id uuid.UUID) error
	GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
}

// StickerInput carries the editable fields of a sticker listing.
type StickerInput struct {
	Name        string
	Description string
	Price       money.Cents
	Stock       int32
	Type        string
	ImageURL    string
}

// StickerService provides business logic for the sticker catalog.
type StickerService interface {
	CreateSticker(ctx context.Context, actor *domain.User, shopID uuid.UUID, input StickerInput) (*domain.Sticker, error)
	GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error)
	ListStickers(ctx context.Context, filter domain.StickerFilter) ([]domain.Sticker, error)
	UpdateSticker(ctx context.Context, actor *domain.User, id uuid.UUID, input StickerInput) (*domain.Sticker, error)
	DeleteSticker(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

type stickerService struct {
	store StickerStore
}

// NewStickerService creates a new StickerService instance.
func NewStickerService(store StickerStore) StickerService {
	return &stickerService{store: store}
}

// CreateSticker lists a new sticker in the actor's shop.
func (s *stickerService) CreateSticker(ctx context.Context, actor *domain.User, shopID uuid.UUID, input StickerInput) (*domain.Sticker, error) {
	shop, err := s.store.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, domain.Forbidden("sticker.create", "only the shop owner can list stickers")
	}
	if err := validateStickerInput("sticker.create", &input); err != nil {
		return nil, err
	}

	return s.store.CreateSticker(ctx, &domain.Sticker{
		ShopID:      shopID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Type:        input.Type,
		ImageURL:    input.ImageURL,
	})
}

func (s *stickerService) GetSticker(ctx context.Context, id uuid.UUID) (*domain.Sticker, error) {
	return s.store.GetSticker(ctx, id)
}

func (s *stickerService) ListStickers(ctx context.Context, filter domain.StickerFilter) ([]domain.Sticker, error) {
	if filter.Type != "" && !domain.ValidStickerType(filter.Type) {
		return nil, domain.Errorf(domain.EINVALID, "sticker.list", "invalid sticker type: %s", filter.Type)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, domain.Invalid("sticker.list", "min price cannot exceed max price")
	}
	return s.store.ListStickers(ctx, filter)
}

// UpdateSticker edits a listing. The sticker type is fixed at creation;
// a digital sticker cannot later acquire stock semantics.
func (s *stickerService) UpdateSticker(ctx context.Context, actor *domain.User, id uuid.UUID, input StickerInput) (*domain.Sticker, error) {
	sticker, err := s.ownedSticker(ctx, actor, id, "sticker.update")
	if err != nil {
		return nil, err
	}

	input.Type = sticker.Type
	if err := validateStickerInput("sticker.update", &input); err != nil {
		return nil, err
	}

	sticker.Name = input.Name
	sticker.Description = input.Description
	sticker.Price = input.Price
	sticker.Stock = input.Stock
	sticker.ImageURL = input.ImageURL
	if err := s.store.UpdateSticker(ctx, sticker); err != nil {
		return nil, err
	}
	return sticker, nil
}

// DeleteSticker removes a listing from the catalog.
func (s *stickerService) DeleteSticker(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.ownedSticker(ctx, actor, id, "sticker.delete"); err != nil {
		return err
	}
	return s.store.DeleteSticker(ctx, id)
}

func (s *stickerService) ownedSticker(ctx context.Context, actor *domain.User, id uuid.UUID, op string) (*domain.Sticker, error) {
	sticker, err := s.store.GetSticker(ctx, id)
	if err != nil {
		return nil, err
	}
	shop, err := s.store.GetShop(ctx, sticker.ShopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, domain.Forbidden(op, "only the shop owner can do that")
	}
	return sticker, nil
}

func validateStickerInput(op string, input *StickerInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return domain.Invalid(op, "sticker name is required")
	}
	if !domain.ValidStickerType(input.Type) {
		return domain.Errorf(domain.EINVALID, op, "invalid sticker type: %s", input.Type)
	}
	if input.Price < 0 {
		return domain.Invalid(op, "price cannot be negative")
	}
	if input.Stock < 0 {
		return domain.Invalid(op, "stock cannot be negative")
	}
	if input.Type == domain.StickerTypeDigital {
		input.Stock = 0
	}
	return nil
}
