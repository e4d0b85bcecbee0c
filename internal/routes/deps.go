package routes

import (
	"github.com/stickervalley/stickervalley/internal/handler/api"
	"github.com/stickervalley/stickervalley/internal/middleware"
)

// APIDeps contains dependencies for the JSON API routes.
type APIDeps struct {
	Auth *middleware.Auth

	UserHandler     *api.UserHandler
	ShopHandler     *api.ShopHandler
	StickerHandler  *api.StickerHandler
	CartHandler     *api.CartHandler
	OrderHandler    *api.OrderHandler
	ReviewHandler   *api.ReviewHandler
	WishlistHandler *api.WishlistHandler
}
