package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stickervalley/stickervalley/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Fox Stickers", want: "fox-stickers"},
		{name: "punctuation collapses", input: "Fox & Friends!! Shop", want: "fox-friends-shop"},
		{name: "leading and trailing trimmed", input: "  --Cool Shop--  ", want: "cool-shop"},
		{name: "digits kept", input: "Shop 24/7", want: "shop-24-7"},
		{name: "only punctuation", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

// fakeShopStore keeps shops in a map and enforces slug uniqueness like
// the database constraint does.
type fakeShopStore struct {
	shops map[uuid.UUID]*domain.Shop
}

func newFakeShopStore() *fakeShopStore {
	return &fakeShopStore{shops: make(map[uuid.UUID]*domain.Shop)}
}

func (f *fakeShopStore) CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	for _, existing := range f.shops {
		if existing.Slug == shop.Slug {
			return nil, domain.Conflict("shop.create", "shop slug already exists")
		}
	}
	out := *shop
	out.ID = uuid.New()
	f.shops[out.ID] = &out
	copied := out
	return &copied, nil
}

func (f *fakeShopStore) GetShop(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	out := *shop
	return &out, nil
}

func (f *fakeShopStore) GetShopBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	for _, shop := range f.shops {
		if shop.Slug == slug {
			out := *shop
			return &out, nil
		}
	}
	return nil, domain.ErrShopNotFound
}

func (f *fakeShopStore) ListShops(ctx context.Context) ([]domain.Shop, error) {
	var shops []domain.Shop
	for _, shop := range f.shops {
		shops = append(shops, *shop)
	}
	return shops, nil
}

func (f *fakeShopStore) UpdateShop(ctx context.Context, shop *domain.Shop) error {
	if _, ok := f.shops[shop.ID]; !ok {
		return domain.ErrShopNotFound
	}
	out := *shop
	f.shops[shop.ID] = &out
	return nil
}

func (f *fakeShopStore) DeleteShop(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.shops[id]; !ok {
		return domain.ErrShopNotFound
	}
	delete(f.shops, id)
	return nil
}

func TestCreateShopRequiresVendor(t *testing.T) {
	svc := NewShopService(newFakeShopStore())

	buyer := &domain.User{ID: uuid.New(), Role: domain.RoleBuyer}
	_, err := svc.CreateShop(context.Background(), buyer, "Fox Shop", "")
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	vendor := &domain.User{ID: uuid.New(), Role: domain.RoleVendor}
	shop, err := svc.CreateShop(context.Background(), vendor, "Fox Shop", "stickers of foxes")
	require.NoError(t, err)
	assert.Equal(t, "fox-shop", shop.Slug)
	assert.Equal(t, vendor.ID, shop.OwnerID)
}

func TestCreateShopValidation(t *testing.T) {
	svc := NewShopService(newFakeShopStore())
	vendor := &domain.User{ID: uuid.New(), Role: domain.RoleVendor}

	_, err := svc.CreateShop(context.Background(), vendor, "   ", "")
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.CreateShop(context.Background(), vendor, "!!!", "")
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.CreateShop(context.Background(), vendor, "Fox Shop", "")
	require.NoError(t, err)
	_, err = svc.CreateShop(context.Background(), vendor, "Fox Shop", "")
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err), "duplicate slug conflicts")
}

func TestUpdateShopOwnership(t *testing.T) {
	store := newFakeShopStore()
	svc := NewShopService(store)

	owner := &domain.User{ID: uuid.New(), Role: domain.RoleVendor}
	stranger := &domain.User{ID: uuid.New(), Role: domain.RoleVendor}
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	shop, err := svc.CreateShop(context.Background(), owner, "Fox Shop", "")
	require.NoError(t, err)

	_, err = svc.UpdateShop(context.Background(), stranger, shop.ID, "Stolen Shop", "")
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	updated, err := svc.UpdateShop(context.Background(), owner, shop.ID, "Fox Shop Deluxe", "now with holo")
	require.NoError(t, err)
	assert.Equal(t, "Fox Shop Deluxe", updated.Name)
	assert.Equal(t, "fox-shop", updated.Slug, "slug is fixed at creation")

	// Admins can edit any shop.
	_, err = svc.UpdateShop(context.Background(), admin, shop.ID, "Moderated Shop", "")
	require.NoError(t, err)

	err = svc.DeleteShop(context.Background(), stranger, shop.ID)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))
	require.NoError(t, svc.DeleteShop(context.Background(), owner, shop.ID))
}
