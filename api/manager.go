package api

import (
	"kalini_server/api/admin"
	"kalini_server/api/auth"
	"kalini_server/api/cart"
	"kalini_server/api/health"
	"kalini_server/api/middleware"
	"kalini_server/api/orders"
	"kalini_server/api/products"
	"kalini_server/api/subscriptions"
	"kalini_server/services"
	"kalini_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	orderRoutes   *orders.OrderRoutesManager
	cartRoutes    *cart.CartRoutesManager
	subRoutes     *subscriptions.SubscriptionRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, sm.EmailService, sm.CacheService, cfg, mw),
		adminRoutes:   admin.NewAdminRoutesManager(logger, sm.ProductService, sm.OrderService, mw),
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		cartRoutes:    cart.NewCartRoutesManager(logger, sm.CartService, mw),
		subRoutes:     subscriptions.NewSubscriptionRoutesManager(logger, sm.SubscriptionService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.subRoutes.RegisterRoutes(r)
}
