package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/stickervalley/stickervalley/internal/domain"
)

// ShopStore is the persistence surface the shop service needs.
type ShopStore interface {
	CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	GetShopBySlug(ctx context.Context, slug string) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]domain.Shop, error)
	UpdateShop(ctx context.Context, shop *domain.Shop) error
	DeleteShop(ctx context.Context, id uuid.UUID) error
}

// ShopService provides business logic for vendor shops.
type ShopService interface {
	CreateShop(ctx context.Context, owner *domain.User, name, description string) (*domain.Shop, error)
	GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	GetShopBySlug(ctx context.Context, slug string) (*domain.Shop, error)
	ListShops(ctx context.Context) ([]domain.Shop, error)
	UpdateShop(ctx context.Context, actor *domain.User, id uuid.UUID, name, description string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

type shopService struct {
	store ShopStore
}

// NewShopService creates a new ShopService instance.
func NewShopService(store ShopStore) ShopService {
	return &shopService{store: store}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a shop name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateShop opens a shop for a vendor. Buyers cannot open shops.
func (s *shopService) CreateShop(ctx context.Context, owner *domain.User, name, description string) (*domain.Shop, error) {
	if !owner.IsVendor() && !owner.IsAdmin() {
		return nil, domain.Forbidden("shop.create", "only vendors can open a shop")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("shop.create", "shop name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, domain.Invalid("shop.create", "shop name must contain letters or digits")
	}

	return s.store.CreateShop(ctx, &domain.Shop{
		OwnerID:     owner.ID,
		Name:        name,
		Slug:        slug,
		Description: description,
	})
}

func (s *shopService) GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	return s.store.GetShop(ctx, id)
}

func (s *shopService) GetShopBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	return s.store.GetShopBySlug(ctx, slug)
}

func (s *shopService) ListShops(ctx context.Context) ([]domain.Shop, error) {
	return s.store.ListShops(ctx)
}

// UpdateShop edits a shop's name and description. Only the owner or an
// admin may edit; the slug is fixed at creation so links stay stable.
func (s *shopService) UpdateShop(ctx context.Context, actor *domain.User, id uuid.UUID, name, description string) (*domain.Shop, error) {
	shop, err := s.ownedShop(ctx, actor, id, "shop.update")
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("shop.update", "shop name is required")
	}

	shop.Name = name
	shop.Description = description
	if err := s.store.UpdateShop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop closes a shop and removes its listings.
func (s *shopService) DeleteShop(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.ownedShop(ctx, actor, id, "shop.delete"); err != nil {
		return err
	}
	return s.store.DeleteShop(ctx, id)
}

func (s *shopService) ownedShop(ctx context.Context, actor *domain.User, id uuid.UUID, op string) (*domain.Shop, error) {
	shop, err := s.store.GetShop(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, domain.Forbidden(op, "only the shop owner can do that")
	}
	return shop, nil
}
