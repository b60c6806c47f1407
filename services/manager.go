package services

import (
	"github.com/MonkyMars/gecho"

	"kalini_server/database"
	"kalini_server/structs"
)

type ServiceManager struct {
	AuthService         *AuthService
	EmailService        *EmailService
	CacheService        *CacheService
	HealthService       *HealthService
	ProductService      *ProductService
	OrderService        *OrderService
	CartService         *CartService
	SubscriptionService *SubscriptionService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	orderService := NewOrderService(logger, cfg, db, productService, emailService)
	cartService := NewCartService(logger, cacheService, productService)
	subscriptionService := NewSubscriptionService(logger, db, emailService)

	return &ServiceManager{
		AuthService:         authService,
		EmailService:        emailService,
		CacheService:        cacheService,
		HealthService:       healthService,
		ProductService:      productService,
		OrderService:        orderService,
		CartService:         cartService,
		SubscriptionService: subscriptionService,
	}
}
