package routes

import (
	"github.com/stickervalley/stickervalley/internal/domain"
	"github.com/stickervalley/stickervalley/internal/router"
)

// RegisterAPIRoutes wires the JSON API under /api/v1.
//
// Public routes cover the browsable catalog. Everything that touches a
// user's own data sits behind RequireAuth; vendor and admin surfaces
// add a role check on top.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	requireAuth := router.Middleware(deps.Auth.RequireAuth)
	requireAdmin := router.Middleware(deps.Auth.RequireRole(domain.RoleAdmin))

	// Public catalog.
	r.Get("/api/v1/shops", deps.ShopHandler.List)
	r.Get("/api/v1/shops/{shopID}", deps.ShopHandler.Get)
	r.Get("/api/v1/shops/by-slug/{slug}", deps.ShopHandler.GetBySlug)
	r.Get("/api/v1/stickers", deps.StickerHandler.List)
	r.Get("/api/v1/stickers/{stickerID}", deps.StickerHandler.Get)
	r.Get("/api/v1/stickers/{stickerID}/reviews", deps.ReviewHandler.List)

	// Authenticated routes.
	auth := r.Group(requireAuth)

	auth.Get("/api/v1/me", deps.UserHandler.Me)

	// Vendor shop management. Ownership checks live in the services.
	auth.Post("/api/v1/shops", deps.ShopHandler.Create)
	auth.Put("/api/v1/shops/{shopID}", deps.ShopHandler.Update)
	auth.Delete("/api/v1/shops/{shopID}", deps.ShopHandler.Delete)
	auth.Post("/api/v1/shops/{shopID}/stickers", deps.StickerHandler.Create)
	auth.Put("/api/v1/stickers/{stickerID}", deps.StickerHandler.Update)
	auth.Delete("/api/v1/stickers/{stickerID}", deps.StickerHandler.Delete)

	// Cart.
	auth.Get("/api/v1/cart", deps.CartHandler.GetCart)
	auth.Delete("/api/v1/cart", deps.CartHandler.Clear)
	auth.Post("/api/v1/cart/items", deps.CartHandler.AddItem)
	auth.Put("/api/v1/cart/items/{stickerID}", deps.CartHandler.UpdateItem)
	auth.Delete("/api/v1/cart/items/{stickerID}", deps.CartHandler.RemoveItem)

	// Orders.
	auth.Post("/api/v1/orders", deps.OrderHandler.PlaceOrder)
	auth.Get("/api/v1/orders", deps.OrderHandler.ListOrders)
	auth.Get("/api/v1/orders/{orderID}", deps.OrderHandler.GetOrder)
	auth.Post("/api/v1/orders/{orderID}/pay", deps.OrderHandler.Pay)
	auth.Post("/api/v1/orders/{orderID}/cancel", deps.OrderHandler.Cancel)
	auth.Get("/api/v1/orders/{orderID}/invoice", deps.OrderHandler.GetInvoice)
	auth.Patch("/api/v1/orders/{orderID}/status", deps.OrderHandler.UpdateStatus, requireAdmin)

	// Reviews and wishlist.
	auth.Post("/api/v1/stickers/{stickerID}/reviews", deps.ReviewHandler.Create)
	auth.Delete("/api/v1/reviews/{reviewID}", deps.ReviewHandler.Delete)
	auth.Post("/api/v1/wishlist", deps.WishlistHandler.Save)
	auth.Get("/api/v1/wishlist", deps.WishlistHandler.List)
	auth.Delete("/api/v1/wishlist/{stickerID}", deps.WishlistHandler.Remove)
}
